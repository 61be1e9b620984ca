package action

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// OutputName is the step output carrying the Markdown report.
const OutputName = "report"

// FailureSink receives the message of a failed run.
type FailureSink interface {
	Fail(message string)
}

// ActionsFailure reports failure with the ::error:: workflow command.
type ActionsFailure struct {
	w       io.Writer
	failed  bool
	message string
}

func NewActionsFailure(w io.Writer) *ActionsFailure {
	return &ActionsFailure{w: w}
}

func (f *ActionsFailure) Fail(message string) {
	f.failed = true
	f.message = message
	fmt.Fprintf(f.w, "::error::%s\n", escapeData(message))
}

// Failed reports whether Fail was called.
func (f *ActionsFailure) Failed() bool { return f.failed }

// Message returns the last failure message.
func (f *ActionsFailure) Message() string { return f.message }

func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}

// SetOutput appends a multi-line step output to the file named by
// GITHUB_OUTPUT. It is a no-op outside a workflow.
func SetOutput(name, value string) error {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open GITHUB_OUTPUT: %w", err)
	}
	defer file.Close()

	return WriteOutput(file, name, value)
}

// WriteOutput writes name=value in the heredoc form the runner expects.
func WriteOutput(w io.Writer, name, value string) error {
	delimiter := "ghadelimiter_" + uuid.NewString()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return fmt.Errorf("output %s contains the delimiter %s", name, delimiter)
	}
	_, err := fmt.Fprintf(w, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	return err
}
