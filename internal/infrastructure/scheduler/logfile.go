package scheduler

import (
	"fmt"
	"os"
)

// appendLogLines appends lines to an append-only reporter log file,
// creating it on first use. Each reporter owns one file; concurrent
// appends are safe because O_APPEND writes are atomic for lines this
// short.
func appendLogLines(path string, lines ...string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	defer f.Close()

	for _, line := range lines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return fmt.Errorf("failed to write log line: %w", err)
		}
	}
	return nil
}
