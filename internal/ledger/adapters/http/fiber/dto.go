package fiber

// VoiceEventRequest is the gateway bridge's delivery payload
// @Description Voice-message event DTO
type VoiceEventRequest struct {
	MessageID   string `json:"message_id"`
	Type        string `json:"type"`
	FromMe      bool   `json:"from_me"`
	SenderID    string `json:"sender_id"`
	DisplayName string `json:"display_name"`
	Duration    int64  `json:"duration"`
	Timestamp   int64  `json:"timestamp"`
}

type VoiceEventResponse struct {
	Status string `json:"status"`
}

type BulkVoiceEventsRequest struct {
	Events []VoiceEventRequest `json:"events"`
}

type BulkVoiceEventsResponse struct {
	Recorded   int `json:"recorded"`
	Duplicates int `json:"duplicates"`
	Ignored    int `json:"ignored"`
}

// LedgerRowResponse mirrors the persisted user_durations row.
type LedgerRowResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	NotifyName    string `json:"notify_name"`
	TotalDuration int64  `json:"total_duration"`
	LastTimestamp int64  `json:"last_timestamp"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_event"`
	Message string `json:"message" example:"Event payload is invalid"`
}
