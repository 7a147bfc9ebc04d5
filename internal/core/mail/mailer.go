package mail

import (
	"context"

	gomail "github.com/wneessen/go-mail"
)

type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer 纯文本 SMTP 发送
type Mailer struct {
	client *gomail.Client
	from   string
}

func New(o Options) (*Mailer, error) {
	opts := []gomail.Option{gomail.WithPort(o.Port)}
	if o.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(o.Username),
			gomail.WithPassword(o.Password),
		)
	}
	c, err := gomail.NewClient(o.Host, opts...)
	if err != nil {
		return nil, err
	}
	return &Mailer{client: c, from: o.From}, nil
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)
	return m.client.DialAndSendWithContext(ctx, msg)
}
