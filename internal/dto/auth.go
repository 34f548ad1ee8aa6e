package dto

// LoginRequest accepts either form fields or a JSON body
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// TokenResponse is returned by the login endpoint
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MessageResponse carries a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}
