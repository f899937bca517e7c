package domain

import (
	"strings"
	"time"

	"github.com/AnthoniusHendriyanto/account-service/pkg/constant"
)

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Gender       string
	Role         string
	IPAddress    string
	Country      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin compares the stored role case-insensitively.
func (u *User) IsAdmin() bool {
	return u != nil && strings.EqualFold(u.Role, constant.RoleAdmin)
}

// NormalizeRole maps free-form role input onto ADMIN or USER.
func NormalizeRole(role string) string {
	if strings.EqualFold(strings.TrimSpace(role), constant.RoleAdmin) {
		return constant.RoleAdmin
	}
	return constant.DefaultUserRole
}
