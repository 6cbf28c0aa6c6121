// Package domain contains the core domain models of the task runner.
package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Registry holds the statically defined tasks of a task file.
type Registry struct {
	tasks map[string]Task
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[string]Task),
	}
}

// Register adds a task to the registry.
// It returns an error if a task with the same name already exists.
func (r *Registry) Register(t *Task) error {
	if _, exists := r.tasks[t.Name]; exists {
		return zerr.With(ErrTaskAlreadyExists, "task_name", t.Name)
	}
	r.tasks[t.Name] = *t
	return nil
}

// Lookup returns the task registered under name.
func (r *Registry) Lookup(name string) (Task, bool) {
	t, ok := r.tasks[name]
	return t, ok
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.tasks)
}

// Names returns the registered task names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validate checks that every prerequisite is registered and that no task reaches itself.
// Tasks are visited in lexical order so the reported error is stable.
func (r *Registry) Validate() error {
	state := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		state[name] = 1
		path = append(path, name)

		for _, dep := range r.tasks[name].Prerequisites {
			if _, ok := r.tasks[dep]; !ok {
				return zerr.With(zerr.With(ErrMissingDependency, "task", name), "missing_dependency", dep)
			}
			switch state[dep] {
			case 1:
				return cycleError(path, dep)
			case 0:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		state[name] = 2
		path = path[:len(path)-1]
		return nil
	}

	for _, name := range r.Names() {
		if state[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// Plan expands targets into the ordered list of task invocations.
// Each target contributes the plans of its prerequisites, left to right, followed by
// the target itself. Repeated prerequisites are not deduplicated.
func (r *Registry) Plan(targets ...string) ([]Task, error) {
	var plan []Task
	visiting := make(map[string]bool)
	var path []string

	var expand func(name string) error
	expand = func(name string) error {
		task, ok := r.tasks[name]
		if !ok {
			return zerr.With(ErrTaskNotFound, "task", name)
		}
		if visiting[name] {
			return cycleError(path, name)
		}

		visiting[name] = true
		path = append(path, name)
		for _, dep := range task.Prerequisites {
			if err := expand(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		visiting[name] = false

		plan = append(plan, task)
		return nil
	}

	for _, target := range targets {
		if err := expand(target); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

func cycleError(path []string, dep string) error {
	start := slices.Index(path, dep)
	if start < 0 {
		start = 0
	}
	cycle := append(slices.Clone(path[start:]), dep)
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(cycle, " -> "))
}
