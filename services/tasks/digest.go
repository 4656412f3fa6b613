package tasks

import (
	"encoding/json"
	"time"

	"tempo/models"

	"github.com/hibiken/asynq"
)

const TypeDigestSend = "digest:send"

// NewDigestTask builds the queued task that produces one user's daily digest
// email at fireAt.
func NewDigestTask(payload models.DigestPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeDigestSend, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
