package nvim

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/neovim/go-client/nvim"

	"github.com/sokinpui/transplant/internal/fs"
	"github.com/sokinpui/transplant/internal/ui"
)

// Manager handles the connection and interaction with a Neovim instance.
type Manager struct {
	nvim          *nvim.Nvim
	isSelfStarted bool
	cmd           *exec.Cmd
	socketPath    string
	save          bool
}

var _ fs.Writer = (*Manager)(nil)

// New creates a new Neovim manager, connecting to an existing instance
// or starting a new headless one. A headless instance is discarded on Close,
// so its buffers are always saved.
func New(save bool) (*Manager, error) {
	// Try to connect to a running instance first.
	if addr := os.Getenv("NVIM_LISTEN_ADDRESS"); addr != "" {
		v, err := nvim.Dial(addr)
		if err == nil {
			return &Manager{nvim: v, save: save}, nil
		}
		ui.Warning("Could not connect to Neovim at %s: %v", addr, err)
	}

	// If that fails, start a temporary headless instance.
	tmpDir, err := os.MkdirTemp("", "transplant-nvim-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir for nvim: %w", err)
	}
	socketPath := filepath.Join(tmpDir, "nvim.sock")

	cmd := exec.Command("nvim", "--headless", "--clean", "--listen", socketPath)
	if err := cmd.Start(); err != nil {
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to start headless nvim: %w. Is 'nvim' in your PATH?", err)
	}

	// Wait for the socket file to appear.
	for i := 0; i < 20; i++ {
		if _, err := os.Stat(socketPath); err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	v, err := nvim.Dial(socketPath)
	if err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to connect to headless nvim: %w", err)
	}

	if !save {
		ui.Warning("No running Neovim found; the headless instance will save the buffer.")
	}
	m := &Manager{
		nvim:          v,
		isSelfStarted: true,
		cmd:           cmd,
		socketPath:    socketPath,
		save:          true,
	}
	if err := m.nvim.Command("set noswapfile"); err != nil {
		ui.Warning("Could not configure headless nvim: %v", err)
	}
	return m, nil
}

// Close disconnects from Neovim and cleans up if it was self-started.
func (m *Manager) Close() {
	if m.nvim != nil {
		m.nvim.Close()
	}
	if m.isSelfStarted && m.cmd != nil && m.cmd.Process != nil {
		if err := m.cmd.Process.Kill(); err == nil {
			m.cmd.Wait()
			os.RemoveAll(filepath.Dir(m.socketPath))
		}
	}
}

// WriteText replaces the buffer of path with content and, when saving is
// enabled, writes the buffer to disk.
func (m *Manager) WriteText(path, content string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	lines, eol := splitLines(content)

	b := m.nvim.NewBatch()
	b.Command(fmt.Sprintf("edit %s", escapePath(absPath)))
	b.SetBufferLines(0, 0, -1, true, lines)
	if eol {
		b.Command("setlocal eol fixeol")
	} else {
		b.Command("setlocal noeol nofixeol")
	}
	if m.save {
		b.Command("write")
	}

	if err := b.Execute(); err != nil {
		return &fs.FileAccessError{Path: path, Op: "nvim write", Err: err}
	}
	return nil
}

// splitLines converts content into buffer lines and reports whether it ended
// with a newline.
func splitLines(content string) ([][]byte, bool) {
	eol := strings.HasSuffix(content, "\n")
	content = strings.TrimSuffix(content, "\n")

	parts := strings.Split(content, "\n")
	lines := make([][]byte, len(parts))
	for i, s := range parts {
		lines[i] = []byte(s)
	}
	return lines, eol
}

// escapePath escapes characters that are special on an Ex command line.
func escapePath(p string) string {
	replacer := strings.NewReplacer(" ", `\ `, "%", `\%`, "#", `\#`, "|", `\|`)
	return replacer.Replace(p)
}
