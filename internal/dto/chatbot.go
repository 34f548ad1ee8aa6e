package dto

// ChatQuery is the chatbot request body. The key is required; an empty message is allowed.
type ChatQuery struct {
	Message *string `json:"message" binding:"required"`
}

// ChatResponse is the chatbot reply. Error is null on success.
type ChatResponse struct {
	Response string  `json:"response"`
	Success  bool    `json:"success"`
	Error    *string `json:"error"`
}
