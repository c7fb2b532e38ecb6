package domain

// LastMessage is the most recent message of a chat as reported by the
// gateway. Only received voice messages contribute to the snapshot.
type LastMessage struct {
	MessageID       string
	Type            string // "voice" / "ptt" / "chat" / ...
	FromMe          bool
	SenderID        string // raw platform id
	DisplayName     string
	DurationSeconds int64
	Timestamp       int64 // epoch seconds
}

type Chat struct {
	Name        string
	LastMessage *LastMessage // nil for empty chats
}

// ChatSnapshotEntry is one line of the live chat projection. Timestamp is a
// human-readable local time and empty when the chat's last message is not a
// received voice message.
type ChatSnapshotEntry struct {
	Name          string
	TotalDuration int64
	Timestamp     string
}
