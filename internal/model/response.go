package model

// Wire status markers shared by all endpoints.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ChatResponse is the POST /api/chat success body.
type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
	Timestamp      string `json:"timestamp"`
	Status         string `json:"status"`
}

// ErrorResponse is the failure body for every endpoint.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// NewErrorResponse builds an error body with the error status marker.
func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{Error: msg, Status: StatusError}
}

// HealthResponse is the GET /api/health body.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// ConfigResponse is the GET /api/config body, consumed by the frontend.
type ConfigResponse struct {
	MaxMessageLength int    `json:"max_message_length"`
	TypingDelay      int    `json:"typing_delay"`
	BrandName        string `json:"brand_name"`
	WelcomeMessage   string `json:"welcome_message"`
}

// DeleteResponse is the DELETE /api/conversations/{id} body.
type DeleteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
