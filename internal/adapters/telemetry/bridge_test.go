package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/chore/internal/adapters/telemetry"
	"go.trai.ch/chore/internal/core/domain"
	"go.trai.ch/chore/internal/core/ports"
	"go.trai.ch/chore/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_StartAndEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(mockRenderer)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	gomock.InOrder(
		mockRenderer.EXPECT().OnTaskStart(gomock.Any(), "lint", gomock.Any()),
		mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil),
	)

	_, span := tp.Tracer("test").Start(context.Background(), "lint")
	span.End()
}

func TestBridge_EndWithError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(mockRenderer)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	mockRenderer.EXPECT().OnTaskStart(gomock.Any(), "test", gomock.Any())
	mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), errors.New("exit status 2"))

	_, span := tp.Tracer("test").Start(context.Background(), "test")
	span.SetStatus(codes.Error, "exit status 2")
	span.End()
}

func TestBridge_EndWithEmptyErrorDescription(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(mockRenderer)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	mockRenderer.EXPECT().OnTaskStart(gomock.Any(), gomock.Any(), gomock.Any())
	mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), errors.New("task failed"))

	_, span := tp.Tracer("test").Start(context.Background(), "audit")
	span.SetStatus(codes.Error, "")
	span.End()
}

func TestBridge_TaskNameAttribute(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(mockRenderer)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	gomock.InOrder(
		mockRenderer.EXPECT().OnTaskStart(gomock.Any(), "lint", gomock.Any()),
		mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil),
	)

	_, span := tp.Tracer("test").Start(context.Background(), "invocation",
		trace.WithAttributes(attribute.String(ports.AttrTaskName, "lint")))
	span.End()
}

func TestBridge_EndWithExitCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(mockRenderer)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	want := &domain.CommandFailure{Task: "test", Command: "go test ./...", ExitCode: 2}
	mockRenderer.EXPECT().OnTaskStart(gomock.Any(), "test", gomock.Any())
	mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), want)

	_, span := tp.Tracer("test").Start(context.Background(), "test",
		trace.WithAttributes(attribute.String(ports.AttrTaskName, "test")))
	span.SetAttributes(
		attribute.String(ports.AttrTaskCommand, "go test ./..."),
		attribute.Int(ports.AttrExitCode, 2),
	)
	span.SetStatus(codes.Error, "exit status 2")
	span.End()
}

func TestBridge_NilRenderer(_ *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(nil)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "clean")
	span.End()
}

func TestBridge_FlushAndShutdown(t *testing.T) {
	bridge := telemetry.NewBridge(nil)

	if err := bridge.ForceFlush(context.Background()); err != nil {
		t.Errorf("ForceFlush() should not return error, got: %v", err)
	}
	if err := bridge.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() should not return error, got: %v", err)
	}
}
