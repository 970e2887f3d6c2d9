package timestamp

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLayouts(t *testing.T) {
	want := time.Date(2024, 3, 15, 14, 30, 5, 123456000, time.UTC)

	cases := []string{
		"2024-03-15T14:30:05.123456Z",
		"2024-03-15 14:30:05.123456+00:00",
		"2024-03-15 17:30:05.123456+03:00",
		"2024-03-15 14:30:05.123456",
		"2024-03-15T14:30:05.123456",
	}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			ts, err := Parse(raw)
			require.NoError(t, err)
			assert.True(t, want.Equal(ts.Time), "got %s", ts.Time)
		})
	}

	_, err := Parse("yesterday")
	assert.Error(t, err)
}

func TestUnmarshalJSON(t *testing.T) {
	var v struct {
		At   Timestamp  `json:"at"`
		Last *Timestamp `json:"last"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"at":"2024-03-15 14:30:05","last":null}`), &v))
	assert.Equal(t, 2024, v.At.Year())
	assert.Nil(t, v.Last)

	require.NoError(t, json.Unmarshal([]byte(`{"at":null}`), &v))
	assert.True(t, v.At.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"at":12}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"at":"soon"}`), &v))
}

func TestMarshalRoundTrip(t *testing.T) {
	ts := New(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-01-02T03:04:05Z"`, string(data))

	data, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	assert.Empty(t, Timestamp{}.Clock())
	assert.Len(t, ts.Clock(), 5)
	assert.Len(t, ts.Date(), 10)
}
