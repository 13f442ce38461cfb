package fiber

// SendNotificationRequest represents a dispatch trigger payload
// @Description Notification dispatch DTO
type SendNotificationRequest struct {
	EventID         string               `json:"event_id"`
	EventType       string               `json:"event_type"`
	Bundle          string               `json:"bundle"`
	Application     string               `json:"application"`
	Payload         map[string]any       `json:"payload"`
	SubjectTemplate string               `json:"subject_template"`
	BodyTemplate    string               `json:"body_template"`
	PersistHistory  bool                 `json:"persist_history"`
	EndpointID      string               `json:"endpoint_id"`
	EndpointName    string               `json:"endpoint_name"`
	Recipients      RecipientSettingsDTO `json:"recipients"`
}

type RecipientSettingsDTO struct {
	OnlyAdmins            bool     `json:"only_admins"`
	IgnoreUserPreferences bool     `json:"ignore_user_preferences"`
	GroupID               string   `json:"group_id"`
	Users                 []string `json:"users"`
}

type SendNotificationResponse struct {
	Status    string `json:"status"`
	HistoryID string `json:"history_id,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_notification"`
	Message string `json:"message,omitempty"`
}
