package models

// AlertType distinguishes preparedness notices from requests for help.
type AlertType string

const (
	AlertTypePrep AlertType = "prep"
	AlertTypeHelp AlertType = "help"
)

// Valid reports whether t is a known alert type.
func (t AlertType) Valid() bool {
	return t == AlertTypePrep || t == AlertTypeHelp
}

// Alert is a community-wide notice shown in the banner.
type Alert struct {
	ID          string    `json:"id"`
	Type        AlertType `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Sender      string    `json:"sender"`
	Verified    bool      `json:"verified"`
	CreatedAt   int64     `json:"created_at"`
}

// AlertInput carries every Alert field except the ones assigned on add.
type AlertInput struct {
	Type        AlertType `json:"type" validate:"alert_type"`
	Title       string    `json:"title" validate:"required,max=120"`
	Description string    `json:"description" validate:"max=2000"`
	Location    string    `json:"location" validate:"max=200"`
	Sender      string    `json:"sender" validate:"required,max=120"`
	Verified    bool      `json:"verified"`
}
