//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

const ringSize = 1 << 20 // 1 MiB of scrollback
var binPath = "memodeck_e2e"

// Keys as the terminal sends them
const (
	KeyEnter     = "\r"
	KeyEsc       = "\x1b"
	KeyTab       = "\t"
	KeyCtrlC     = "\x03"
	KeySpace     = " "
	KeyDown      = "j"
	KeySelectAll = "a"
	KeyDelete    = "d"
	KeyRestore   = "u"
	KeyCancel    = "x"
	KeyYes       = "y"
	KeyNo        = "n"
	KeyHelp      = "?"
	KeyQuit      = "q"
)

// ANSI escape sequence regex for normalization - covers CSI, OSC, charset, keypad modes
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` + // CSI sequences
		`(?:\x1b\][^\x07]*\x07)|` + // OSC sequences
		`(?:\x1b[\(\)][A-Za-z])|` + // charset sequences
		`(?:\x1b=|\x1b>)|` + // keypad mode sequences
		`\r`, // carriage returns
)

// TUITestFramework drives the memodeck binary inside a PTY
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	tty       *os.File
	cmd       *exec.Cmd
	workspace string

	// Ring buffer for continuous output capture
	mu   sync.Mutex
	buf  []byte
	head int
	full bool
}

// NewTUITest creates a framework with its own workspace holding the
// database, config and log file
func NewTUITest(t *testing.T) *TUITestFramework {
	tf := &TUITestFramework{
		t:         t,
		buf:       make([]byte, ringSize),
		workspace: t.TempDir(),
	}
	if err := tf.writeConfig(); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return tf
}

func (tf *TUITestFramework) dbPath() string     { return filepath.Join(tf.workspace, "memodeck.db") }
func (tf *TUITestFramework) configPath() string { return filepath.Join(tf.workspace, "config.toml") }

// baseArgs point the binary at the workspace
func (tf *TUITestFramework) baseArgs() []string {
	return []string{"--db", tf.dbPath(), "--config", tf.configPath()}
}

func (tf *TUITestFramework) env() []string {
	return append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.workspace, // isolate $HOME
		"MEMODECK_E2E_TEST=1",
	)
}

// Run executes a non-interactive subcommand and returns its combined output
func (tf *TUITestFramework) Run(args ...string) (string, error) {
	tf.t.Helper()
	cmd := exec.Command(binPath, append(tf.baseArgs(), args...)...)
	cmd.Env = tf.env()
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// StartApp launches the TUI in a PTY
func (tf *TUITestFramework) StartApp(args ...string) error {
	tf.cmd = exec.Command(binPath, append(tf.baseArgs(), args...)...)
	tf.cmd.Env = tf.env()

	ptyFile, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}
	tf.pty = ptyFile
	tf.tty = tty
	tf.cmd.Stdout = tty
	tf.cmd.Stdin = tty
	tf.cmd.Stderr = tty

	if err := pty.Setsize(ptyFile, &pty.Winsize{Rows: 40, Cols: 120}); err != nil {
		return fmt.Errorf("failed to size pty: %w", err)
	}

	if err := tf.cmd.Start(); err != nil {
		ptyFile.Close()
		tty.Close()
		return fmt.Errorf("failed to start command: %w", err)
	}

	tf.startReader()
	return nil
}

// startReader copies PTY output into the ring buffer until the PTY closes
func (tf *TUITestFramework) startReader() {
	go func() {
		buf := make([]byte, 8192)
		for {
			n, err := tf.pty.Read(buf)
			if n > 0 {
				tf.mu.Lock()
				for i := 0; i < n; i++ {
					tf.buf[tf.head] = buf[i]
					tf.head = (tf.head + 1) % ringSize
					if tf.head == 0 {
						tf.full = true
					}
				}
				tf.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()
}

// Press sends each key with a short pause so the update loop sees them apart
func (tf *TUITestFramework) Press(keys ...string) {
	tf.t.Helper()
	for _, k := range keys {
		if _, err := tf.pty.Write([]byte(k)); err != nil {
			tf.t.Fatalf("write key %q: %v", k, err)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// Type sends text one rune at a time
func (tf *TUITestFramework) Type(text string) {
	tf.t.Helper()
	for _, r := range text {
		tf.Press(string(r))
	}
}

// Ready waits for the app to signal it's ready
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.OutputContains("__READY__", 5*time.Second)
}

// SeePlain waits for plain text to appear in the normalized output
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.OutputContainsPlain(text, 3*time.Second)
}

// OutputContains checks if the raw output contains text within a timeout
func (tf *TUITestFramework) OutputContains(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool { return strings.Contains(s, text) }, timeout)
}

// OutputContainsPlain checks if the normalized output contains text within a timeout
func (tf *TUITestFramework) OutputContainsPlain(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), text)
	}, timeout)
}

// WaitFor polls the output until pred holds or timeout passes
func (tf *TUITestFramework) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	tf.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if pred(tf.Snapshot()) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// WaitExit waits for the process to end and reports whether it did in time
func (tf *TUITestFramework) WaitExit(timeout time.Duration) bool {
	done := make(chan error, 1)
	go func() { done <- tf.cmd.Wait() }()
	select {
	case <-done:
		tf.cmd = nil
		return true
	case <-time.After(timeout):
		return false
	}
}

// Snapshot returns the current contents of the ring buffer
func (tf *TUITestFramework) Snapshot() string {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	if !tf.full {
		return string(tf.buf[:tf.head])
	}
	out := make([]byte, ringSize)
	copy(out, tf.buf[tf.head:])
	copy(out[ringSize-tf.head:], tf.buf[:tf.head])
	return string(out)
}

// SnapshotPlain returns the output with ANSI sequences removed
func (tf *TUITestFramework) SnapshotPlain() string {
	return ansiRe.ReplaceAllString(tf.Snapshot(), "")
}

// DumpTailOnFail logs the last n bytes of normalized output
func (tf *TUITestFramework) DumpTailOnFail(n int) {
	if !tf.t.Failed() {
		return
	}
	s := tf.SnapshotPlain()
	if len(s) > n {
		s = s[len(s)-n:]
	}
	tf.t.Logf("--- output tail ---\n%s", s)
}

// Cleanup closes the PTY and terminates the application
func (tf *TUITestFramework) Cleanup() {
	tf.DumpTailOnFail(4096)
	// Close PTY first to deliver SIGHUP to child process
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.tty != nil {
		_ = tf.tty.Close()
		tf.tty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
}
