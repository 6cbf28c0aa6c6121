package telemetry_test

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// recordingRenderer is a simple test double for ports.Renderer that records events in order.
type recordingRenderer struct {
	mu     sync.Mutex
	events []string
	logs   []byte
}

func (m *recordingRenderer) Start(_ context.Context) error { return nil }
func (m *recordingRenderer) Stop() error                   { return nil }
func (m *recordingRenderer) Wait() error                   { return nil }

func (m *recordingRenderer) OnPlanEmit(tasks []string, _ []string) {
	m.record(fmt.Sprintf("plan %v", tasks))
}

func (m *recordingRenderer) OnTaskStart(_, name string, _ time.Time) {
	m.record("start " + name)
}

func (m *recordingRenderer) OnTaskCommand(_, command string) {
	m.record("command " + command)
}

func (m *recordingRenderer) OnTaskLog(_ string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, "log "+string(data))
	m.logs = append(m.logs, data...)
}

func (m *recordingRenderer) OnTaskComplete(_ string, _ time.Time, err error) {
	if err != nil {
		m.record("fail " + err.Error())
		return
	}
	m.record("complete")
}

func (m *recordingRenderer) record(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *recordingRenderer) snapshot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.events...)
}
