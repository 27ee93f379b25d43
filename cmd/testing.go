package cmd

import (
	"bytes"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// mu serialises TestExecute: the command is shared by pointer and
// os.Stdout and os.Stderr are process wide.
var mu sync.Mutex

// TestExecute executes command with args and returns everything written to
// the command's writers, os.Stdout and os.Stderr, together with the command's error.
func TestExecute(t *testing.T, command *cobra.Command, args ...string) (string, error) {
	t.Helper()

	mu.Lock()
	defer mu.Unlock()

	buf := &syncBuffer{}
	command.SetOut(buf)
	command.SetErr(buf)
	command.SetArgs(args)

	var cmdErr error

	captured := captureOS(t, func() {
		_, cmdErr = command.ExecuteC()
	})

	_, _ = buf.Write(captured)

	return buf.String(), cmdErr
}

// captureOS returns all output written to os.Stdout and os.Stderr while f runs.
func captureOS(t *testing.T, f func()) []byte {
	t.Helper()

	stdout, stderr := os.Stdout, os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout, os.Stderr = w, w

	out := make(chan []byte)
	go func() {
		all, _ := io.ReadAll(r)
		out <- all
	}()

	defer func() {
		os.Stdout, os.Stderr = stdout, stderr
	}()

	f()

	require.NoError(t, w.Close())

	return <-out
}

// syncBuffer is an io.Writer safe for concurrent use.
type syncBuffer struct {
	b bytes.Buffer
	m sync.Mutex
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.m.Lock()
	defer b.m.Unlock()

	return b.b.Write(p) //nolint:wrapcheck
}

func (b *syncBuffer) String() string {
	b.m.Lock()
	defer b.m.Unlock()

	return b.b.String()
}
