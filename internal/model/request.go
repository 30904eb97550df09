package model

// ChatRequest is the POST /api/chat body. Fields are enumerated explicitly;
// user_context is accepted as a free-form object and otherwise ignored.
type ChatRequest struct {
	Message        string         `json:"message" binding:"required"`
	ConversationID string         `json:"conversation_id,omitempty"`
	UserContext    map[string]any `json:"user_context,omitempty"`
}
