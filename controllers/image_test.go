package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "u1/front.jpg", ObjectKey("u1", "front.jpg"))
}

func TestObjectKey_StripsClientPaths(t *testing.T) {
	assert.Equal(t, "u1/front.jpg", ObjectKey("u1", "../../etc/front.jpg"))
	assert.Equal(t, "u1/front.jpg", ObjectKey("u1", `C:\photos\front.jpg`))
}

func TestOwnsObject(t *testing.T) {
	assert.True(t, OwnsObject("u1", "u1/front.jpg"))
	assert.False(t, OwnsObject("u1", "u2/front.jpg"))
	// An owner id that is a prefix of another must not match.
	assert.False(t, OwnsObject("u1", "u12/front.jpg"))
}
