package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDecodesNullableFields(t *testing.T) {
	raw := `{"id":7,"phone":"+79022428092","name":null,"bio":null,"avatar":null,
		"is_admin":false,"is_blocked":false,"is_profile_completed":false}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(raw), &u))
	assert.Equal(t, int64(7), u.ID)
	assert.Empty(t, u.Name)
	assert.Nil(t, u.CreatedAt)
	assert.Equal(t, "+79022428092", u.DisplayName())
	assert.Equal(t, "?", u.Initial())
}

func TestInitial(t *testing.T) {
	assert.Equal(t, "R", Initial("roma"))
	assert.Equal(t, "Р", Initial("  рома"))
	assert.Equal(t, "?", Initial(""))
	assert.Equal(t, "?", Initial("   "))
}

func TestDisplayNamePrefersName(t *testing.T) {
	u := User{Phone: "+7", Name: " roma "}
	assert.Equal(t, "roma", u.DisplayName())
}
