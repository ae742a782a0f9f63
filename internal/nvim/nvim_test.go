package nvim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantEOL bool
	}{
		{name: "trailing newline", content: "a\nb\n", want: []string{"a", "b"}, wantEOL: true},
		{name: "no trailing newline", content: "a\nb", want: []string{"a", "b"}},
		{name: "blank lines kept", content: "a\n\nb\n", want: []string{"a", "", "b"}, wantEOL: true},
		{name: "empty", content: "", want: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, eol := splitLines(tt.content)

			got := make([]string, len(lines))
			for i, l := range lines {
				got[i] = string(l)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantEOL, eol)
		})
	}
}

func TestEscapePath(t *testing.T) {
	assert.Equal(t, `/tmp/my\ dir/a\#b.tsx`, escapePath("/tmp/my dir/a#b.tsx"))
}
