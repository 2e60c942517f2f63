//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"strings"
)

// testConfig keeps the log in the workspace and turns off artificial latency
const testConfig = `version = 1
log_file = %q

[bulk]
cap = 100
count_cap = 999
animation_ms = 400
interval_ms = 40
settle_ms = 200
lid_close_ms = 100
processing_end_ms = 100
concurrency = 4
easing = "linear"

[ui]
default_sort = "created"
show_help_bar = true
render_markdown = false
`

func (tf *TUITestFramework) writeConfig() error {
	return os.WriteFile(tf.configPath(), []byte(fmt.Sprintf(testConfig, tf.workspace+"/memodeck.log")), 0644)
}

// Seed fills the workspace database through the seed command
func (tf *TUITestFramework) Seed(memos, tasks int) {
	tf.t.Helper()
	out, err := tf.Run("seed", "--memos", fmt.Sprint(memos), "--tasks", fmt.Sprint(tasks))
	if err != nil {
		tf.t.Fatalf("seed failed: %v\n%s", err, out)
	}
}

// AddMemo adds one memo through the CLI
func (tf *TUITestFramework) AddMemo(title string) {
	tf.t.Helper()
	out, err := tf.Run("memo", "add", title)
	if err != nil || !strings.HasPrefix(out, "Added memo") {
		tf.t.Fatalf("memo add failed: %v\n%s", err, out)
	}
}

// ListPlain returns the output of memodeck list kind
func (tf *TUITestFramework) ListPlain(kind string) string {
	tf.t.Helper()
	out, err := tf.Run("list", kind)
	if err != nil {
		tf.t.Fatalf("list %s failed: %v\n%s", kind, err, out)
	}
	return out
}
