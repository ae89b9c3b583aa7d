package auth

import "context"

// AuthService issues JWT pairs for email+password logins.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
