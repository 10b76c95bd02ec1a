package models

// NotificationType drives the icon and colour of a notification.
type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
)

// Valid reports whether t is a known notification type.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeInfo, NotificationTypeSuccess, NotificationTypeWarning, NotificationTypeError:
		return true
	}
	return false
}

// Notification is a per-session message in the notification panel.
type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt int64            `json:"created_at"`
}

// NotificationInput carries the caller-supplied fields of a Notification.
type NotificationInput struct {
	Title   string           `json:"title" validate:"required,max=120"`
	Message string           `json:"message" validate:"required,max=1000"`
	Type    NotificationType `json:"type" validate:"notification_type"`
}

// NotificationSettings are the delivery channel toggles.
type NotificationSettings struct {
	Email   bool `json:"email"`
	Push    bool `json:"push"`
	Sound   bool `json:"sound"`
	Desktop bool `json:"desktop"`
}

// NotificationSettingsPatch merges only the fields that are set.
type NotificationSettingsPatch struct {
	Email   *bool `json:"email,omitempty"`
	Push    *bool `json:"push,omitempty"`
	Sound   *bool `json:"sound,omitempty"`
	Desktop *bool `json:"desktop,omitempty"`
}

// Apply merges p over s.
func (p NotificationSettingsPatch) Apply(s NotificationSettings) NotificationSettings {
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Push != nil {
		s.Push = *p.Push
	}
	if p.Sound != nil {
		s.Sound = *p.Sound
	}
	if p.Desktop != nil {
		s.Desktop = *p.Desktop
	}
	return s
}
