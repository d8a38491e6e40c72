package messages

// Error message constants
const (
	ErrInvalidRequest = "Invalid request data"
	ErrUserNotFound   = "Recipient not found"
	ErrFailedSend     = "Failed to send message"
	ErrFailedFetch    = "Failed to fetch messages"
)

// BroadcastRequest model for a mentor announcement to everyone
type BroadcastRequest struct {
	Text string `json:"text" binding:"required"`
}

// PersonalMessageRequest model for a mentor note to one participant
type PersonalMessageRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Text        string `json:"text" binding:"required"`
}
