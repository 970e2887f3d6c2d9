package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID    int64  `json:"id" validate:"required,gt=0"`
	Phone string `json:"phone" validate:"required"`
}

func TestStructHandlesPointersAndSlices(t *testing.T) {
	require.NoError(t, Struct(payload{ID: 1, Phone: "+7"}))
	require.NoError(t, Struct(&payload{ID: 1, Phone: "+7"}))
	require.NoError(t, Struct([]payload{{ID: 1, Phone: "a"}, {ID: 2, Phone: "b"}}))
	require.NoError(t, Struct([]payload{}))

	err := Struct([]payload{{ID: 1, Phone: "a"}, {ID: 0, Phone: "b"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1")
	assert.Contains(t, err.Error(), "id")

	var nilPayload *payload
	assert.Error(t, Struct(nilPayload))
	assert.NoError(t, Struct(42))
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone("+79022428092"))
	assert.NoError(t, ValidatePhone("8 (902) 242-80-92"))
	assert.Error(t, ValidatePhone(""))
	assert.Error(t, ValidatePhone("   "))
	assert.Error(t, ValidatePhone("roma"))
	assert.Error(t, ValidatePhone("+"+strings.Repeat("1", 25)))
}

func TestValidateFields(t *testing.T) {
	assert.NoError(t, ValidateName("Рома"))
	assert.Error(t, ValidateName("  "))
	assert.Error(t, ValidateName(strings.Repeat("я", MaxNameLength+1)))

	assert.NoError(t, ValidateBio(""))
	assert.Error(t, ValidateBio(strings.Repeat("b", MaxBioLength+1)))

	assert.NoError(t, ValidatePassword("secret"))
	assert.Error(t, ValidatePassword(""))

	assert.NoError(t, ValidateMessage("hi"))
	assert.Error(t, ValidateMessage(" \t\n"))
}
