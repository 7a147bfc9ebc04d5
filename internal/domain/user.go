package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// RoleSet 显式角色集合，供角色守卫使用
func RoleSet(roles ...Role) map[Role]struct{} {
	s := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

type User struct {
	ID        string `gorm:"primaryKey;size:32" json:"id"`
	Email     string `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Username  string `gorm:"size:64" json:"username,omitempty"`
	FirstName string `gorm:"size:64" json:"firstName,omitempty"`
	LastName  string `gorm:"size:64" json:"lastName,omitempty"`
	Image     string `gorm:"size:255" json:"image,omitempty"`
	Role      Role   `gorm:"size:16;not null;default:user" json:"role"`

	// 凭证字段，默认不对外输出
	PasswordHash        string     `gorm:"size:100;not null" json:"-"`
	PasswordChangedAt   *time.Time `json:"-"`
	ResetTokenHash      *string    `gorm:"size:64;index" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// ChangedPasswordAfter 密码是否在 token 签发之后改过（按秒比较）
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Unix() < u.PasswordChangedAt.Unix()
}

// UserRepository 找不到记录时返回 (nil, nil)
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByResetTokenHash(ctx context.Context, hash string) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]User, error)
	Search(ctx context.Context, name string) ([]User, error)
}
