package models

// Message roles. The "ad" role marks turns injected by the ad pipeline so
// keyword aggregation can skip them.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleAd        = "ad"
)

// Message is a single conversation turn. Owned by the chat client; the
// selection pipeline treats it as read-only.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Messages       []Message `json:"messages"`
	CurrentMessage string    `json:"currentMessage"`
}

// ChatResponse is the reply to POST /api/chat. Ad is nil when no ad was
// surfaced this turn.
type ChatResponse struct {
	Response string       `json:"response"`
	Ad       *AdSelection `json:"ad,omitempty"`
}
