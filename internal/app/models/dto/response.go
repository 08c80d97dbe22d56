package dto

// MessageResponse is the flat {"msg": ...} payload used for every
// outcome the client only needs to display.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// NewMessageResponse creates a message response
func NewMessageResponse(msg string) MessageResponse {
	return MessageResponse{Msg: msg}
}
