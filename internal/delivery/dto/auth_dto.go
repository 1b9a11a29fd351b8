package dto

// Request DTOs

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// Response DTOs

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}
