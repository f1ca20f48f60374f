package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitHTML(t *testing.T) {
	t.Run("short text is a single chunk", func(t *testing.T) {
		chunks := splitHTML("hello", 4000)
		require.Equal(t, []string{"hello"}, chunks)
	})

	t.Run("long text splits at newlines", func(t *testing.T) {
		line := strings.Repeat("x", 90)
		text := strings.Join([]string{line, line, line}, "\n")

		chunks := splitHTML(text, 100)
		require.Len(t, chunks, 3)
		for _, chunk := range chunks {
			require.LessOrEqual(t, len(chunk), 100)
			require.Equal(t, line, chunk)
		}
	})

	t.Run("unbroken text hard-splits at the limit", func(t *testing.T) {
		text := strings.Repeat("x", 250)

		chunks := splitHTML(text, 100)
		require.Len(t, chunks, 3)
		require.Equal(t, 250, len(chunks[0])+len(chunks[1])+len(chunks[2]))
	})
}
