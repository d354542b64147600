package messaging

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBatchEvent(t *testing.T) {
	jobID := uuid.New()
	event := NewBatchEvent(EventTypeStarted, jobID, "nightly batch", "running")

	assert.NotEmpty(t, event.MessageID)
	assert.Equal(t, EventTypeStarted, event.Type)
	assert.Equal(t, jobID, event.JobID)
	assert.Equal(t, "nightly batch", event.JobName)
	assert.Equal(t, "running", event.Status)
	assert.False(t, event.Timestamp.IsZero())

	other := NewBatchEvent(EventTypeStarted, jobID, "nightly batch", "running")
	assert.NotEqual(t, event.MessageID, other.MessageID, "each event gets a fresh message ID")
}

func TestBatchEventValidate(t *testing.T) {
	valid := NewBatchEvent(EventTypeCompleted, uuid.New(), "job", "completed")
	require.NoError(t, valid.Validate())

	t.Run("missing message ID", func(t *testing.T) {
		event := valid
		event.MessageID = ""
		assert.Error(t, event.Validate())
	})

	t.Run("missing type", func(t *testing.T) {
		event := valid
		event.Type = ""
		assert.Error(t, event.Validate())
	})

	t.Run("nil job ID", func(t *testing.T) {
		event := valid
		event.JobID = uuid.Nil
		assert.Error(t, event.Validate())
	})
}
