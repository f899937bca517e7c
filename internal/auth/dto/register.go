package dto

type RegisterInput struct {
	Email     string `json:"emailId" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Name      string `json:"userName" validate:"required"`
	Gender    string `json:"gender"`
	Role      string `json:"userType" validate:"omitempty,oneof=ADMIN USER admin user"`
	IPAddress string `json:"-"`
}
