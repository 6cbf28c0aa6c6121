package linear_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/chore/internal/adapters/linear"
)

func newTestRenderer(t *testing.T) (*linear.Renderer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	return linear.NewRenderer(&stdout, &stderr), &stdout, &stderr
}

func TestRenderer_BuildWorkflow(t *testing.T) {
	r, stdout, stderr := newTestRenderer(t)
	require.NoError(t, r.Start(context.Background()))

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.OnPlanEmit([]string{"clean", "lint", "build"}, []string{"build"})

	r.OnTaskStart("span1", "clean", start)
	r.OnTaskCommand("span1", "rm -rf bin")
	r.OnTaskComplete("span1", start.Add(20*time.Millisecond), nil)

	r.OnTaskStart("span2", "lint", start)
	r.OnTaskCommand("span2", "golangci-lint run")
	r.OnTaskLog("span2", []byte("0 issues.\n"))
	r.OnTaskComplete("span2", start.Add(1500*time.Millisecond), nil)

	r.OnTaskStart("span3", "build", start)
	r.OnTaskCommand("span3", "go build ./...")
	r.OnTaskLog("span3", []byte("main.go:3:1: syntax error\n"))
	r.OnTaskComplete("span3", start.Add(250*time.Millisecond),
		errors.New(`task "build": command "go build ./..." exited with status 1`))

	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())

	g := goldie.New(t)
	g.Assert(t, "build_workflow_stderr", stderr.Bytes())
	g.Assert(t, "build_workflow_stdout", stdout.Bytes())
}

func TestRenderer_PartialLines(t *testing.T) {
	r, stdout, _ := newTestRenderer(t)

	start := time.Now()
	r.OnTaskStart("span1", "test", start)

	r.OnTaskLog("span1", []byte("partial"))
	assert.Empty(t, stdout.String(), "partial line should not be printed immediately")

	r.OnTaskLog("span1", []byte(" line\nnext"))
	assert.Equal(t, "[test] partial line\n", stdout.String())

	r.OnTaskLog("span1", []byte(" chunk"))
	r.OnTaskComplete("span1", start.Add(time.Millisecond), nil)
	assert.Equal(t, "[test] partial line\n[test] next chunk\n", stdout.String())
}

func TestRenderer_CommandFlushesPreviousOutput(t *testing.T) {
	r, stdout, stderr := newTestRenderer(t)

	r.OnTaskStart("span1", "format", time.Now())
	r.OnTaskLog("span1", []byte("no trailing newline"))
	r.OnTaskCommand("span1", "gofmt -l .")

	assert.Equal(t, "[format] no trailing newline\n", stdout.String())
	assert.Contains(t, stderr.String(), "[format] $ gofmt -l .")
}

func TestRenderer_SkipsEmptyLines(t *testing.T) {
	r, stdout, _ := newTestRenderer(t)

	r.OnTaskStart("span1", "sync", time.Now())
	r.OnTaskLog("span1", []byte("\r\n\nsynced\r\n"))

	assert.Equal(t, "[sync] synced\n", stdout.String())
}

func TestRenderer_UnknownSpan(t *testing.T) {
	r, stdout, stderr := newTestRenderer(t)

	r.OnTaskCommand("missing", "echo hi")
	r.OnTaskLog("missing", []byte("ignored\n"))
	r.OnTaskComplete("missing", time.Now(), nil)

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRenderer_StopFlushesPending(t *testing.T) {
	r, stdout, _ := newTestRenderer(t)

	r.OnTaskStart("span1", "install", time.Now())
	r.OnTaskLog("span1", []byte("interrupted mid-line"))
	require.NoError(t, r.Stop())

	assert.Equal(t, "[install] interrupted mid-line\n", stdout.String())
}

func TestRenderer_Concurrent(t *testing.T) {
	r, stdout, _ := newTestRenderer(t)

	start := time.Now()
	r.OnTaskStart("a", "audit", start)
	r.OnTaskStart("b", "test", start)

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b"} {
		wg.Go(func() {
			for range 50 {
				r.OnTaskLog(id, []byte("line\n"))
			}
		})
	}
	wg.Wait()

	assert.Equal(t, 100, bytes.Count(stdout.Bytes(), []byte("\n")))
}
