package dto

type ChatQueryRequest struct {
	ConversationId string `json:"conversation_id,omitempty"`
	Message        string `json:"message,omitempty"`
	Image          string `json:"image,omitempty"` // base64 cover photo, data-URL prefix optional
}

type ChatQueryResponse struct {
	ConversationId string         `json:"conversation_id"`
	Intent         string         `json:"intent"`
	Reply          string         `json:"reply"`
	MatchedBook    *BookResponse  `json:"matched_book,omitempty"`
	Suggested      []BookResponse `json:"suggested,omitempty"`
}

type ResetConversationRequest struct {
	ConversationId string `json:"conversation_id" validate:"required"`
}

type ResetConversationResponse struct {
	ConversationId string `json:"conversation_id"`
	Reply          string `json:"reply"`
}
