package capture

import (
	"context"
	"fmt"
	"os/exec"
)

// runCommand executes a binary and returns its combined output, which
// for ffmpeg is where the useful diagnostics live.
func runCommand(ctx context.Context, bin string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("%s: %w: %s", bin, err, tail(string(out), 400))
	}
	return string(out), nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
