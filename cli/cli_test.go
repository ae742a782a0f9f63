package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]string{
		"-c", "refactor.toml",
		"--start-marker", "const FeedItem",
		"--old-usage", "<FeedItem product={p} />",
		"-l", "src", "-l", "web",
		"--strict", "-n",
		"src/components/CheckoutFeed.tsx",
	})
	require.NoError(t, err)

	assert.Equal(t, "src/components/CheckoutFeed.tsx", cfg.Target)
	assert.Equal(t, "refactor.toml", cfg.Recipe)
	assert.Equal(t, "const FeedItem", cfg.StartMarker)
	assert.Equal(t, "<FeedItem product={p} />", cfg.OldUsage)
	assert.Equal(t, []string{"src", "web"}, cfg.LookupDirs)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.DryRun)
	assert.False(t, cfg.Buffer)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no target", args: []string{"--strict"}, want: "expected exactly one target file, got 0"},
		{name: "two targets", args: []string{"a", "b"}, want: "expected exactly one target file, got 2"},
		{name: "dry-run with buffer", args: []string{"-n", "-b", "a"}, want: "--dry-run and --buffer are mutually exclusive"},
		{name: "atomic with buffer", args: []string{"--atomic", "-b", "a"}, want: "--atomic and --buffer are mutually exclusive"},
		{name: "save without buffer", args: []string{"--save", "a"}, want: "--save requires --buffer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
