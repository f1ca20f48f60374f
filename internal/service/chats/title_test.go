package chats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "short message kept as-is",
			message: "hi there",
			want:    "hi there",
		},
		{
			name:    "exactly six words kept as-is",
			message: "a b c d e f",
			want:    "a b c d e f",
		},
		{
			name:    "long message truncated to six words",
			message: "a b c d e f g h",
			want:    "a b c d e f...",
		},
		{
			name:    "extra whitespace collapses in the truncated form",
			message: "what  is the   capital of France exactly",
			want:    "what is the capital of France...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Title(tt.message))
		})
	}
}
