package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/chore/internal/core/domain"
	"go.trai.ch/chore/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor to forward task invocations to a Renderer.
//
// A span is reported under its task.name attribute when present. A span that ended
// with a task.exit_code attribute is reported as a *domain.CommandFailure naming the
// last command it announced.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a new Bridge.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{
		renderer: renderer,
	}
}

// OnStart reports the task invocation as started.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	b.renderer.OnTaskStart(sc.SpanID().String(), taskName(s), s.StartTime())
}

// OnEnd reports the outcome of the task invocation.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	b.renderer.OnTaskComplete(sc.SpanID().String(), s.EndTime(), spanError(s))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

func taskName(s sdktrace.ReadOnlySpan) string {
	if v, ok := lookup(s.Attributes(), ports.AttrTaskName); ok && v.AsString() != "" {
		return v.AsString()
	}
	return s.Name()
}

func spanError(s sdktrace.ReadOnlySpan) error {
	status := s.Status()
	if status.Code != codes.Error {
		return nil
	}

	attrs := s.Attributes()
	if code, ok := lookup(attrs, ports.AttrExitCode); ok {
		failure := &domain.CommandFailure{
			Task:     taskName(s),
			ExitCode: int(code.AsInt64()),
		}
		if cmd, ok := lookup(attrs, ports.AttrTaskCommand); ok {
			failure.Command = cmd.AsString()
		}
		return failure
	}

	if status.Description == "" {
		return errors.New("task failed")
	}
	return errors.New(status.Description)
}

func lookup(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}
