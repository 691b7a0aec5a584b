package dto

// RegisterRequest represents the payload for self registration
type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"a@x.com"`
	Password string `json:"password" example:"secret1"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret1"`
}

// CreateAdminRequest represents the payload for admin creation by an admin
type CreateAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the identity it represents
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn" example:"3600"`
	User      UserResponse `json:"user"`
}
