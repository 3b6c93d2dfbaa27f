package worker

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRetryBackoffDoubles(t *testing.T) {
	assert.Equal(t, time.Minute, computeRetryBackoff(0))
	assert.Equal(t, time.Minute, computeRetryBackoff(1))
	assert.Equal(t, 2*time.Minute, computeRetryBackoff(2))
	assert.Equal(t, 4*time.Minute, computeRetryBackoff(3))
}

func TestJobEnvelopeRoundTrip(t *testing.T) {
	payload, err := json.Marshal(InvoiceJobPayload{RepairOrderID: "b9b0c8d2-0000-0000-0000-000000000001"})
	require.NoError(t, err)

	raw, err := json.Marshal(Job{Type: "invoice", Payload: payload})
	require.NoError(t, err)

	var job Job
	require.NoError(t, json.Unmarshal(raw, &job))
	assert.Equal(t, "invoice", job.Type)

	var decoded InvoiceJobPayload
	require.NoError(t, json.Unmarshal(job.Payload, &decoded))
	assert.Equal(t, "b9b0c8d2-0000-0000-0000-000000000001", decoded.RepairOrderID)
}
