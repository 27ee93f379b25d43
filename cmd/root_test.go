package cmd_test

import (
	"errors"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/classic-comedians/cmd"
)

const serveConfig = "testdata/serve-config.yaml"

// interrupted returns a channel that already received an interrupt,
// so serve shuts down right after it started.
func interrupted() <-chan os.Signal {
	osSignal := make(chan os.Signal, 1)
	osSignal <- syscall.SIGTERM

	return osSignal
}

func TestRootCmd(t *testing.T) {
	t.Parallel()

	t.Run("help lists the commands", func(t *testing.T) {
		t.Parallel()

		output, err := cmd.TestExecute(t, cmd.NewComediansCLI(nil), "--help")
		assert.NoError(t, err)
		assert.Contains(t, output, "Available Commands:")
		assert.Contains(t, output, "serve")
		assert.Contains(t, output, "routes")
		assert.Contains(t, output, "version")
		assert.NotContains(t, output, "[flags]")
	})

	t.Run("unknown command", func(t *testing.T) {
		t.Parallel()

		_, err := cmd.TestExecute(t, cmd.NewComediansCLI(nil), "non-ex-command")
		assert.Error(t, err)
	})

	t.Run("serve by default", func(t *testing.T) {
		t.Parallel()

		output, err := cmd.TestExecute(t, cmd.NewComediansCLI(interrupted()), "--config", serveConfig)
		assert.NoError(t, err)
		assert.Contains(t, output, "serving on")
	})
}

func TestServeCmd(t *testing.T) {
	t.Parallel()

	t.Run("serve until interrupted", func(t *testing.T) {
		t.Parallel()

		output, err := cmd.TestExecute(t, cmd.NewComediansCLI(interrupted()), "serve", "-c", serveConfig)
		assert.NoError(t, err)
		assert.Contains(t, output, "classic-comedians version")
		assert.Contains(t, output, "serving on")
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Parallel()

		_, err := cmd.TestExecute(t, cmd.NewComediansCLI(interrupted()), "serve", "-c", "testdata/non-existing.yaml")
		assert.True(t, errors.Is(err, cmd.ErrInvalidConfig))
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()

		_, err := cmd.TestExecute(t, cmd.NewComediansCLI(interrupted()), "serve", "-c", "../testdata/config/invalid-config.yaml")
		assert.True(t, errors.Is(err, cmd.ErrInvalidConfig))
	})
}

func TestComediansCLI_Routes(t *testing.T) {
	t.Parallel()

	output, err := cmd.TestExecute(t, cmd.NewComediansCLI(nil), "routes", "-c", serveConfig)
	assert.NoError(t, err)
	assert.Contains(t, output, "/Comedian/Edit/:id")
	assert.Contains(t, output, "comedian.destroy")
	assert.Contains(t, output, "home")
}
