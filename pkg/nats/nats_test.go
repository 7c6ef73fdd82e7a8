package nats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "dashboard.DATASET_PURGED", Subject("DATASET_PURGED"))
}

func TestDecode(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	raw := []byte(`{"type":"DATASET_UPLOADED","occurred_at":"2024-05-01T10:00:00Z","data":{"rows":3}}`)

	ev, err := Decode("dashboard.DATASET_UPLOADED", raw)
	require.NoError(t, err)
	assert.Equal(t, "DATASET_UPLOADED", ev.EventType())
	assert.True(t, at.Equal(ev.Timestamp()))
	assert.Equal(t, 3.0, ev.Payload()["rows"])

	ev, err = Decode("dashboard.UPLOAD_REJECTED", []byte(`{"data":{}}`))
	require.NoError(t, err)
	assert.Equal(t, "UPLOAD_REJECTED", ev.EventType())

	_, err = Decode("dashboard.X", []byte(`not json`))
	assert.Error(t, err)
}
