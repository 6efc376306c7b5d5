package auth

import "time"

// LoginRequest is the body of POST /api/v1/authenticate. Email is not
// format-checked: any stored address can log in, and an unknown one is a 401.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// RegisterRequest is the body of POST /api/v1/register. bcrypt ignores bytes
// past 72, so longer passwords are rejected instead of silently truncated.
type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email,max=255"`
	Password string `json:"password" form:"password" binding:"required,min=8,max=72"`
}

// TokenResponse carries a signed token and its expiry as a Unix timestamp.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// RegisterResponse is the public view of a newly registered user.
type RegisterResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
