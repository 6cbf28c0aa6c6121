package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/chore/cmd/chore/commands"
	"go.trai.ch/chore/internal/app"
	"go.trai.ch/chore/internal/build"
)

type mockApp struct {
	runFunc     func(ctx context.Context, targetNames []string, opts app.RunOptions) error
	listFunc    func(ctx context.Context, opts app.ListOptions) error
	historyFunc func(ctx context.Context, opts app.HistoryOptions) error
	logJSON     bool
}

func (m *mockApp) Run(ctx context.Context, targetNames []string, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, targetNames, opts)
	}
	return nil
}

func (m *mockApp) List(ctx context.Context, opts app.ListOptions) error {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) History(ctx context.Context, opts app.HistoryOptions) error {
	if m.historyFunc != nil {
		return m.historyFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) SetLogJSON(enabled bool) {
	m.logJSON = enabled
}

func TestCommands_Root(t *testing.T) {
	t.Run("runs tasks given as arguments", func(t *testing.T) {
		var capturedTargets []string
		var capturedOpts app.RunOptions

		mock := &mockApp{
			runFunc: func(_ context.Context, targetNames []string, opts app.RunOptions) error {
				capturedTargets = targetNames
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"lint", "test", "--config", "ci/chore.yaml", "-n"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []string{"lint", "test"}, capturedTargets)
		assert.Equal(t, app.RunOptions{ConfigPath: "ci/chore.yaml", DryRun: true}, capturedOpts)
	})

	t.Run("shows usage when no tasks provided", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), "Usage:")
	})

	t.Run("enables JSON logs", func(t *testing.T) {
		mock := &mockApp{}

		cli := commands.New(mock)
		cli.SetArgs([]string{"--log-json", "build"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.True(t, mock.logJSON)
	})

	t.Run("version flag", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"--version"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), "chore version "+build.Version)
	})
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		var capturedTargets []string
		called := false

		mock := &mockApp{
			runFunc: func(_ context.Context, targetNames []string, opts app.RunOptions) error {
				capturedOpts = opts
				capturedTargets = targetNames
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "build", "--dry-run", "-c", "other.yaml"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.True(t, capturedOpts.DryRun)
		assert.Equal(t, "other.yaml", capturedOpts.ConfigPath)
		assert.Equal(t, []string{"build"}, capturedTargets)
	})

	t.Run("runs tasks named like subcommands", func(t *testing.T) {
		var capturedTargets []string
		mock := &mockApp{
			runFunc: func(_ context.Context, targetNames []string, _ app.RunOptions) error {
				capturedTargets = targetNames
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "list", "history"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []string{"list", "history"}, capturedTargets)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "target"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("shows usage when no targets provided", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"run"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Usage:")
	})
}

func TestCommands_List(t *testing.T) {
	var captured app.ListOptions
	mock := &mockApp{
		listFunc: func(_ context.Context, opts app.ListOptions) error {
			captured = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"ls", "-c", "sub/chore.yaml"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "sub/chore.yaml", captured.ConfigPath)
}

func TestCommands_History(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.HistoryOptions
	}{
		{name: "show", args: []string{"history"}, want: app.HistoryOptions{}},
		{name: "clear", args: []string{"history", "--clear"}, want: app.HistoryOptions{Clear: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured app.HistoryOptions
			mock := &mockApp{
				historyFunc: func(_ context.Context, opts app.HistoryOptions) error {
					captured = opts
					return nil
				},
			}

			cli := commands.New(mock)
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			assert.Equal(t, tt.want, captured)
		})
	}
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), build.Version)
}
