package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsImageURL(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"https://img.example/a.png", true},
		{"http://img.example/a.png", true},
		{"ftp://img.example/a.png", false},
		{"javascript:alert(1)", false},
		{"img.example/a.png", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsImageURL(tt.raw), tt.raw)
	}
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	type payload struct {
		Number string  `validate:"student_number"`
		Image  *string `validate:"omitempty,image_url"`
	}

	good := "https://img.example/a.png"
	bad := "file:///etc/passwd"

	assert.NoError(t, v.Struct(payload{Number: "20201234", Image: &good}))
	assert.NoError(t, v.Struct(payload{Number: "20201234"}))
	assert.Error(t, v.Struct(payload{Number: "2020-1234"}))
	assert.Error(t, v.Struct(payload{Number: "1234567890123456789"}))
	assert.Error(t, v.Struct(payload{Number: "20201234", Image: &bad}))
}
