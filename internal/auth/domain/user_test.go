package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_IsAdmin(t *testing.T) {
	tests := []struct {
		name string
		user *User
		want bool
	}{
		{name: "upper case admin", user: &User{Role: "ADMIN"}, want: true},
		{name: "lower case admin", user: &User{Role: "admin"}, want: true},
		{name: "mixed case admin", user: &User{Role: "Admin"}, want: true},
		{name: "user role", user: &User{Role: "USER"}, want: false},
		{name: "empty role", user: &User{}, want: false},
		{name: "nil user", user: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.IsAdmin())
		})
	}
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, "ADMIN", NormalizeRole("admin"))
	assert.Equal(t, "ADMIN", NormalizeRole(" ADMIN "))
	assert.Equal(t, "USER", NormalizeRole("user"))
	assert.Equal(t, "USER", NormalizeRole(""))
	assert.Equal(t, "USER", NormalizeRole("superuser"))
}
