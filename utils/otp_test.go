package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateNumericOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateNumericOTP(6)
		assert.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code must be numeric, got %q", code)
		}
	}
}

func TestHashOTP(t *testing.T) {
	a := HashOTP("123456")
	b := HashOTP("123456")
	c := HashOTP("123457")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
	assert.NotContains(t, a, "123456")
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "*****3210", MaskPhone("+919876543210"))
	assert.Equal(t, "123", MaskPhone("123"))
	assert.Equal(t, "", MaskPhone(""))
}
