package output

import (
	"context"

	"github.com/google/uuid"
)

// TaskQueue defines the producer side of the background work queue.
type TaskQueue interface {
	// EnqueueDocumentParse schedules asynchronous processing of an uploaded
	// document and returns the broker-assigned task id.
	EnqueueDocumentParse(ctx context.Context, documentID uuid.UUID, userID string) (string, error)
}

// KeyCipher encrypts provider API keys at rest.
type KeyCipher interface {
	Encrypt(plaintext string) ([]byte, error)
	Decrypt(blob []byte) (string, error)
}
