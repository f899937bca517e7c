package dto

type LoginInput struct {
	Email    string `json:"emailId" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	JWT    string `json:"jwt"`
	ID     int64  `json:"id"`
	Status int    `json:"status"`
}
