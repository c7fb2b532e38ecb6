package fiber

// ChatSnapshotResponse is one line of the live chat projection. Timestamp is
// null when the chat's last message is not a received voice message.
type ChatSnapshotResponse struct {
	Name          string  `json:"name"`
	TotalDuration int64   `json:"totalDuration"`
	Timestamp     *string `json:"timestamp"`
}

type StatusResponse struct {
	Status string `json:"status" example:"ready"`
}

type QRResponse struct {
	QR string `json:"qr"`
}

// SessionUpdateRequest is the gateway's lifecycle webhook payload
// @Description Session lifecycle DTO
type SessionUpdateRequest struct {
	Event string `json:"event"` // "qr" | "ready" | "auth_failure"
	QR    string `json:"qr,omitempty"`
}

type SessionUpdateResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"qr_not_generated"`
	Message string `json:"message,omitempty"`
}
