package auth

// Callback holds the outcome of the single OAuth redirect served by the
// callback listener. Exactly one of Code or Err is set.
type Callback struct {
	Code string
	Err  string
}

// TokenResponse holds the payload returned by the token endpoint.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // seconds until the access token expires
	RefreshToken string `json:"refresh_token,omitempty"`
}
