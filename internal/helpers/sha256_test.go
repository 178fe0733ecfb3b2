package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSHA256(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty string",
			in:   "",
			want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name: "basic string",
			in:   "hello world",
			want: "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, SHA256(tt.in))
			require.Equal(t, tt.want, SHA256Bytes([]byte(tt.in)))
		})
	}
}

func TestShortID(t *testing.T) {
	t.Parallel()

	id := ShortID("hello world")
	require.Len(t, id, 8)
	require.Equal(t, "b94d27b9", id)
	require.Equal(t, id, ShortID("hello world"))
	require.NotEqual(t, id, ShortID("hello world!"))
}
