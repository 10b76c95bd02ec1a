package models

// ChatGroup is a named discussion space. Membership is reference data only.
type ChatGroup struct {
	ID          string   `json:"id" validate:"required,max=64"`
	Name        string   `json:"name" validate:"required,max=120"`
	Description string   `json:"description" validate:"max=500"`
	Members     []string `json:"members"`
	Image       string   `json:"image" validate:"max=2048"`
}

// Clone returns a copy with its own members slice.
func (g ChatGroup) Clone() ChatGroup {
	out := g
	if g.Members != nil {
		out.Members = append(make([]string, 0, len(g.Members)), g.Members...)
	}
	return out
}

// Message is a single chat line. GroupID is not checked against known groups.
type Message struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Sender    string `json:"sender"`
	Timestamp int64  `json:"timestamp"`
	GroupID   string `json:"group_id"`
}

// MessageInput is what a client sends to post into a group.
type MessageInput struct {
	Content string `json:"content" validate:"required,max=2000"`
	Sender  string `json:"sender" validate:"required,max=120"`
}
