package domain

// TokenTypeBearer is the scheme clients put in the Authorization header.
const TokenTypeBearer = "Bearer"

// Tokens is the pair issued on a successful login or refresh.
type Tokens struct {
	Type         string `json:"type"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AccessPayload is the claim set carried by an access token.
type AccessPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RefreshPayload is the claim set carried by a refresh token.
type RefreshPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
