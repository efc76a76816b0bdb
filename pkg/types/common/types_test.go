package common

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDIsValid(t *testing.T) {
	id := NewID()
	assert.NoError(t, id.Validate())
}

func TestIDValidate(t *testing.T) {
	assert.Error(t, ID("").Validate())
	assert.Error(t, ID("not-a-uuid").Validate())
	assert.NoError(t, ID("7b1e9a50-9c2f-4b9b-8f59-1f1f6f1b2a3c").Validate())
}

func TestTimestampRoundTrip(t *testing.T) {
	orig := Timestamp(time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC))

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var decoded Timestamp
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, time.Time(orig).Equal(time.Time(decoded)))
}

func TestTimestampUnmarshalRejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))
}

func TestSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"status": "complete"})
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestErrorResponse(t *testing.T) {
	resp := NewErrorResponse("ANALYSIS_001", "no analysis found")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ANALYSIS_001", resp.Error.Code)
}
