package model

// Response is the common JSON envelope for mutations and failures.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// NewSuccessResponse builds a success envelope
func NewSuccessResponse(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// NewErrorResponse builds an error envelope
func NewErrorResponse(message string, detail string) Response {
	return Response{Success: false, Message: message, Error: detail}
}
