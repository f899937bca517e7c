package dto

import (
	"time"

	"github.com/AnthoniusHendriyanto/account-service/internal/auth/domain"
)

type UserOutput struct {
	ID        int64     `json:"userId"`
	Email     string    `json:"emailId"`
	Name      string    `json:"userName"`
	Gender    string    `json:"gender"`
	Role      string    `json:"userType"`
	IPAddress string    `json:"ipAddress"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserOutput(u domain.User) UserOutput {
	return UserOutput{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Gender:    u.Gender,
		Role:      u.Role,
		IPAddress: u.IPAddress,
		Country:   u.Country,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserOutputs(users []domain.User) []UserOutput {
	out := make([]UserOutput, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserOutput(u))
	}
	return out
}
