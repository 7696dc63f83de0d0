package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	const count = 1000

	for range count {
		generated, err := Generate("book")
		require.NoError(t, err)
		assert.False(t, seen[generated], "ID should be unique: %s", generated)
		seen[generated] = true
	}

	assert.Len(t, seen, count)
}

func TestGenerate_Format(t *testing.T) {
	for _, prefix := range []string{"cmp", "sto", "usr", "book", "list", "sess"} {
		t.Run(prefix, func(t *testing.T) {
			generated, err := Generate(prefix)
			require.NoError(t, err)

			require.True(t, strings.HasPrefix(generated, prefix+"-"))

			// Prefix, separator, then the 21-character NanoID.
			suffix := strings.TrimPrefix(generated, prefix+"-")
			require.Len(t, suffix, 21)

			for _, c := range suffix {
				assert.True(t,
					(c >= 'A' && c <= 'Z') ||
						(c >= 'a' && c <= 'z') ||
						(c >= '0' && c <= '9') ||
						c == '_' || c == '-',
					"character %c should be URL-safe", c)
			}
		})
	}
}

func TestMustGenerate(t *testing.T) {
	generated := MustGenerate("usr")

	assert.True(t, strings.HasPrefix(generated, "usr-"))
	assert.Len(t, generated, len("usr")+1+21)
}
