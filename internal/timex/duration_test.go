package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	var d struct {
		Timeout Duration `json:"timeout"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"timeout":"15s"}`), &d))
	require.Equal(t, 15*time.Second, d.Timeout.Duration)

	require.NoError(t, json.Unmarshal([]byte(`{"timeout":1000000000}`), &d))
	require.Equal(t, time.Second, d.Timeout.Duration)

	require.Error(t, json.Unmarshal([]byte(`{"timeout":"banana"}`), &d))
	require.Error(t, json.Unmarshal([]byte(`{"timeout":true}`), &d))
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{3 * time.Second})
	require.NoError(t, err)
	require.JSONEq(t, `"3s"`, string(b))
}
