package engine

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gcsim/internal/collector"
	"github.com/specialistvlad/gcsim/internal/config"
	"github.com/specialistvlad/gcsim/internal/ctxlog"
	"github.com/specialistvlad/gcsim/internal/heap"
)

// StepResult is the outcome of a single step.
type StepResult struct {
	Kind config.StepKind
	Name string
	// Count is the registry size after the step.
	Count int
	// Stats is set for collect steps only.
	Stats *collector.Stats
	// Removed is the number of edges a disconnect step removed.
	Removed int
}

// Report is the outcome of a scenario run.
type Report struct {
	Strategy collector.Strategy
	// Initial is the registry size after the declared objects were set up.
	Initial int
	Steps   []StepResult
	// Survivors are the names of the registered objects at the end of the run.
	Survivors []string
	// Collections is the number of collection cycles the run performed.
	Collections int
}

// Engine plays the host program for a scenario. The engine holds the owning
// handles; the collector only ever sees non-owning entries.
type Engine struct {
	arena     *heap.Arena
	collector *collector.Collector
	handles   map[string]*heap.Handle
	released  map[string]struct{}
}

// New creates an engine that allocates in arena and registers with c.
func New(arena *heap.Arena, c *collector.Collector) *Engine {
	return &Engine{
		arena:     arena,
		collector: c,
		handles:   make(map[string]*heap.Handle),
		released:  make(map[string]struct{}),
	}
}

// Run sets up the declared objects and executes every step of model in order.
func (e *Engine) Run(ctx context.Context, model *config.Model) (*Report, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Engine run started.", "objects", len(model.Objects), "steps", len(model.Steps))

	report := &Report{Strategy: e.collector.Strategy()}

	if err := e.setup(ctx, model.Objects); err != nil {
		return report, fmt.Errorf("failed to set up heap: %w", err)
	}
	report.Initial = e.collector.CountObjects()
	logger.Debug("Heap set up.", "registered", report.Initial, "live", e.arena.Live())

	for _, step := range model.Steps {
		stepCtx := ctxlog.With(ctx, "step", fmt.Sprintf("%s.%s", step.Kind, step.Name))
		result, err := e.runStep(stepCtx, step)
		if err != nil {
			return report, fmt.Errorf("step %s %q failed: %w", step.Kind, step.Name, err)
		}
		report.Steps = append(report.Steps, *result)
		ctxlog.FromContext(stepCtx).Debug("Step finished.", "count", result.Count)

		if step.Expect != nil && *step.Expect != result.Count {
			report.Survivors = e.collector.Objects()
			report.Collections = e.collector.Cycles()
			return report, &ExpectationError{
				Kind:     step.Kind,
				Step:     step.Name,
				Expected: *step.Expect,
				Actual:   result.Count,
			}
		}
	}

	report.Survivors = e.collector.Objects()
	report.Collections = e.collector.Cycles()
	logger.Debug("Engine run finished.", "steps", len(report.Steps), "survivors", len(report.Survivors))
	return report, nil
}

// setup allocates every declared object before linking any edge, so objects
// may refer to ones declared after them.
func (e *Engine) setup(ctx context.Context, objects []*config.Object) error {
	logger := ctxlog.FromContext(ctx)
	for _, obj := range objects {
		if err := e.allocate(obj.Name, obj.Register); err != nil {
			return err
		}
		logger.Debug("Object allocated.", "name", obj.Name, "registered", obj.Register)
	}
	for _, obj := range objects {
		parent := e.handles[obj.Name]
		for _, childName := range obj.Children {
			child, err := e.lookup(childName)
			if err != nil {
				return fmt.Errorf("object %q: %w", obj.Name, err)
			}
			parent.AddChild(child)
		}
	}
	return nil
}

func (e *Engine) allocate(name string, register bool) error {
	if _, exists := e.handles[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateObject, name)
	}
	if _, gone := e.released[name]; gone {
		return fmt.Errorf("%w: %q", ErrDuplicateObject, name)
	}
	h := e.arena.New(name)
	if register {
		e.collector.Register(h)
	}
	e.handles[name] = h
	return nil
}

func (e *Engine) lookup(name string) (*heap.Handle, error) {
	if h, ok := e.handles[name]; ok {
		return h, nil
	}
	if _, gone := e.released[name]; gone {
		return nil, fmt.Errorf("%w: %q", ErrReleasedObject, name)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownObject, name)
}

func (e *Engine) lookupAll(names []string) ([]*heap.Handle, error) {
	handles := make([]*heap.Handle, 0, len(names))
	for _, name := range names {
		h, err := e.lookup(name)
		if err != nil {
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

func (e *Engine) runStep(ctx context.Context, step *config.Step) (*StepResult, error) {
	logger := ctxlog.FromContext(ctx)
	result := &StepResult{Kind: step.Kind, Name: step.Name}

	switch step.Kind {
	case config.StepCollect:
		roots, err := e.lookupAll(step.Roots)
		if err != nil {
			return nil, err
		}
		stats := e.collector.CollectGarbage(ctx, roots...)
		result.Stats = &stats

	case config.StepCount:
		// Nothing to do: the count is read below.

	case config.StepLink, config.StepDisconnect:
		parent, err := e.lookup(step.Parent)
		if err != nil {
			return nil, err
		}
		target, err := e.lookup(step.Target)
		if err != nil {
			return nil, err
		}
		if step.Kind == config.StepLink {
			parent.AddChild(target)
		} else {
			result.Removed = parent.RemoveChild(target)
			logger.Debug("Edges removed.", "parent", step.Parent, "target", step.Target, "removed", result.Removed)
		}

	case config.StepRelease:
		handles, err := e.lookupAll(step.Objects)
		if err != nil {
			return nil, err
		}
		for i, h := range handles {
			h.Release()
			name := step.Objects[i]
			delete(e.handles, name)
			e.released[name] = struct{}{}
		}

	case config.StepAllocate:
		for _, name := range step.Objects {
			if err := e.allocate(name, true); err != nil {
				return nil, err
			}
		}

	default:
		return nil, fmt.Errorf("unsupported step kind %q", step.Kind)
	}

	result.Count = e.collector.CountObjects()
	return result, nil
}
