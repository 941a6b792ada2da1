package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigestRegistry_TryClaim(t *testing.T) {
	r := NewDigestRegistry()
	digests := []string{
		"deadbeefdeadbeefdeadbeefdeadbeef",
		"0123456789abcdef0123456789abcdef",
		"deadbeefdeadbeefdeadbeefdeadbeef",
		"0123456789abcdef0123456789abcdef",
		"deadbeefdeadbeefdeadbeefdeadbeef",
	}

	var got []bool
	for _, d := range digests {
		got = append(got, r.TryClaim(d))
	}

	assert.Equal(t, []bool{true, true, false, false, false}, got)
	assert.Equal(t, 2, r.Len())
}

func TestDigestRegistry_CaseInsensitive(t *testing.T) {
	r := NewDigestRegistry()
	assert.True(t, r.TryClaim("ABCDEF0123456789ABCDEF0123456789"))
	assert.False(t, r.TryClaim("abcdef0123456789abcdef0123456789"))
}
