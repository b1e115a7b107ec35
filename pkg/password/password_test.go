package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	digest, err := Hash("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", digest)
	assert.True(t, strings.HasPrefix(digest, "$2"), "expected a bcrypt digest")

	assert.True(t, Verify("s3cret-pass", digest))
	assert.False(t, Verify("wrong-pass", digest))
}

func TestHashEmptyPassword(t *testing.T) {
	_, err := Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("same-input")
	require.NoError(t, err)
	second, err := Hash("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, Verify("same-input", first))
	assert.True(t, Verify("same-input", second))
}

func TestVerifyGarbageDigest(t *testing.T) {
	assert.False(t, Verify("anything", "not-a-bcrypt-digest"))
}
