package dto

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the identity, roles and signed credential.
type LoginResponse struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	Token string   `json:"token"`
}

// ValidationErrorResponse carries field-keyed messages; the empty field
// name holds global errors.
type ValidationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}
