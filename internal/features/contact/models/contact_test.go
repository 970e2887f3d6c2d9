package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewFallbacks(t *testing.T) {
	assert.Equal(t, "hi", (&Contact{LastMessage: "hi", Bio: "bio"}).Preview())
	assert.Equal(t, "bio", (&Contact{Bio: "bio"}).Preview())
	assert.Equal(t, NoMessagesPreview, (&Contact{}).Preview())
}

func TestContactDecodesServiceTimestamps(t *testing.T) {
	raw := `[{"id":2,"phone":"+79022428092","name":"roma","bio":null,"avatar":null,
		"last_message":"hello","last_message_time":"2024-03-15 14:30:05.123456+00:00"},
		{"id":3,"phone":"+70000000001","name":null,"bio":null,"avatar":null,
		"last_message":null,"last_message_time":null}]`

	var contacts []Contact
	require.NoError(t, json.Unmarshal([]byte(raw), &contacts))
	require.Len(t, contacts, 2)

	assert.Equal(t, "R", contacts[0].Initial())
	assert.NotEmpty(t, contacts[0].LastSeen())
	assert.Equal(t, "+70000000001", contacts[1].DisplayName())
	assert.Empty(t, contacts[1].LastSeen())
	assert.Equal(t, "?", contacts[1].Initial())
}
