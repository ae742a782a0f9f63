package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/sokinpui/transplant/internal/ui"
)

// SourceProvider determines and retrieves the payload block when the recipe
// does not carry one.
type SourceProvider struct {
	stdin         *os.File
	readClipboard func() (string, error)
}

// New creates a new SourceProvider reading from os.Stdin and the system
// clipboard.
func New() *SourceProvider {
	return &SourceProvider{
		stdin:         os.Stdin,
		readClipboard: clipboard.ReadAll,
	}
}

// GetContent retrieves content from stdin (if piped) or the clipboard.
// An empty clipboard yields an empty string and no error.
func (sp *SourceProvider) GetContent() (string, error) {
	if sp.isPiped() {
		ui.Header("--- Reading payload from stdin ---")
		content, err := io.ReadAll(sp.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(content), nil
	}

	ui.Header("--- Reading payload from clipboard ---")
	content, err := sp.readClipboard()
	if err != nil {
		return "", fmt.Errorf("failed to read from clipboard: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		ui.Warning("Clipboard is empty. No payload to insert.")
		return "", nil
	}
	return content, nil
}

func (sp *SourceProvider) isPiped() bool {
	if sp.stdin == nil {
		return false
	}
	stat, err := sp.stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
