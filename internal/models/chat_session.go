package models

import "time"

// ChatMessage is one turn of the assistant conversation, mirroring the chat
// completions wire roles.
type ChatMessage struct {
	Role    string `json:"role" bson:"role"`
	Content string `json:"content" bson:"content"`
}

// ChatTranscript is the Mongo document appended after every assistant answer.
type ChatTranscript struct {
	SessionID string        `bson:"session_id"`
	Messages  []ChatMessage `bson:"messages"`
	Answer    string        `bson:"answer"`
	CreatedAt time.Time     `bson:"created_at"`
}
