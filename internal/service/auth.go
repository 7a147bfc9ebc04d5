package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"blog-backend/internal/apperr"
	"blog-backend/internal/core/auth"
	"blog-backend/internal/domain"
	"blog-backend/pkg/utils"
)

// Mailer 邮件发送的外部协作者，测试中可替换
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type AuthService struct {
	users    domain.UserRepository
	jwt      *auth.JWTer
	mailer   Mailer
	resetTTL time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewAuthService(users domain.UserRepository, jwt *auth.JWTer, mailer Mailer, resetTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwt:      jwt,
		mailer:   mailer,
		resetTTL: resetTTL,
		log:      log,
		now:      time.Now,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	Username  string
	FirstName string
	LastName  string
}

// Register creates an identity with the user role and issues a token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	return s.register(ctx, in, domain.RoleUser)
}

// AdminRegister is identical to Register but forces the admin role.
func (s *AuthService) AdminRegister(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	return s.register(ctx, in, domain.RoleAdmin)
}

func (s *AuthService) register(ctx context.Context, in RegisterInput, role domain.Role) (*domain.User, string, error) {
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", apperr.Internal("db error", err)
	}
	if existing != nil {
		return nil, "", apperr.Conflict("email already taken, use a different one")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, "", apperr.Internal("hash password failed", err)
	}

	// 新账号不设置 PasswordChangedAt，注册时签发的 token 必须有效
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        in.Email,
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", apperr.Internal("create user failed", err)
	}

	token, err := s.jwt.Issue(u.ID, string(u.Role))
	if err != nil {
		return nil, "", apperr.Internal("issue token failed", err)
	}
	s.log.Info("user registered", zap.String("uid", u.ID), zap.String("role", string(u.Role)))
	return u, token, nil
}

// Login verifies credentials. Unknown email and wrong password return the
// same error class and message, so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperr.Internal("db error", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, "", apperr.Unauthenticated("invalid credentials, check them and try again")
	}

	token, err := s.jwt.Issue(u.ID, string(u.Role))
	if err != nil {
		return nil, "", apperr.Internal("issue token failed", err)
	}
	return u, token, nil
}

// ForgotPassword stores a hashed single-use reset secret on the identity and
// mails the plaintext secret. A second call overwrites the outstanding one.
func (s *AuthService) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return apperr.Internal("db error", err)
	}
	if u == nil {
		return apperr.NotFound("email doesnt belong to any account")
	}

	plain, hash, err := auth.NewResetToken()
	if err != nil {
		return apperr.Internal("generate reset token failed", err)
	}
	expires := s.now().Add(s.resetTTL)
	u.ResetTokenHash = &hash
	u.ResetTokenExpiresAt = &expires
	if err := s.users.Update(ctx, u); err != nil {
		return apperr.Internal("save reset token failed", err)
	}

	resetURL := resetURLBase + "/auth/resetpassword/" + plain
	body := fmt.Sprintf(
		"Forgot your password? Copy and paste this code\n%s\nReset your password or submit a patch request with new password to %s\nIf you didnt forget password please ignore this email",
		plain, resetURL,
	)
	if err := s.mailer.Send(ctx, u.Email, "Password Reset Token", body); err != nil {
		return apperr.Internal("send reset mail failed", err)
	}
	s.log.Info("reset token sent", zap.String("uid", u.ID))
	return nil
}

// ResetPassword consumes a reset secret: sets the new password, clears the
// stored hash so the secret cannot be replayed, and issues a fresh token.
func (s *AuthService) ResetPassword(ctx context.Context, secret, newPassword string) (*domain.User, string, error) {
	hash := auth.HashResetToken(secret)
	u, err := s.users.FindByResetTokenHash(ctx, hash)
	if err != nil {
		return nil, "", apperr.Internal("db error", err)
	}
	if u == nil {
		return nil, "", apperr.InvalidResetToken("token invalid or expired")
	}
	if u.ResetTokenExpiresAt != nil && s.now().After(*u.ResetTokenExpiresAt) {
		return nil, "", apperr.InvalidResetToken("token invalid or expired")
	}

	if err := s.setPassword(ctx, u, newPassword); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.Issue(u.ID, string(u.Role))
	if err != nil {
		return nil, "", apperr.Internal("issue token failed", err)
	}
	s.log.Info("password reset", zap.String("uid", u.ID))
	return u, token, nil
}

// UpdatePassword changes the password of an already-authenticated identity.
func (s *AuthService) UpdatePassword(ctx context.Context, u *domain.User, oldPassword, newPassword string) (string, error) {
	if !utils.CheckPassword(oldPassword, u.PasswordHash) {
		return "", apperr.Unauthenticated("incorrect password, check it and try again")
	}

	if err := s.setPassword(ctx, u, newPassword); err != nil {
		return "", err
	}

	token, err := s.jwt.Issue(u.ID, string(u.Role))
	if err != nil {
		return "", apperr.Internal("issue token failed", err)
	}
	return token, nil
}

// setPassword re-hashes, stamps PasswordChangedAt (which invalidates every
// previously-issued token), and clears any outstanding reset secret.
func (s *AuthService) setPassword(ctx context.Context, u *domain.User, plaintext string) error {
	hash, err := utils.HashPassword(plaintext)
	if err != nil {
		return apperr.Internal("hash password failed", err)
	}
	changed := s.now()
	u.PasswordHash = hash
	u.PasswordChangedAt = &changed
	u.ResetTokenHash = nil
	u.ResetTokenExpiresAt = nil
	if err := s.users.Update(ctx, u); err != nil {
		return apperr.Internal("save password failed", err)
	}
	return nil
}
