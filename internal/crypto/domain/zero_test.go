package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	t.Run("Success_ClearsKeyMaterial", func(t *testing.T) {
		b := []byte("0123456789abcdef0123456789abcdef")
		Zero(b)
		assert.Equal(t, make([]byte, 32), b)
	})

	t.Run("Success_OnlyTouchesTheSlice", func(t *testing.T) {
		buf := []byte("keykeytail")
		Zero(buf[:6])
		assert.Equal(t, "tail", string(buf[6:]))
	})

	t.Run("Success_NilAndEmpty", func(t *testing.T) {
		assert.NotPanics(t, func() { Zero(nil) })
		assert.NotPanics(t, func() { Zero([]byte{}) })
	})
}
