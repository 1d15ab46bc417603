package pipeline

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, a *Analysis) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, a *Analysis) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, a)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	p := New()
	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if len(p.StepNames()) != 0 {
		t.Errorf("expected 0 steps, got %v", p.StepNames())
	}
	if p.logger == nil {
		t.Error("expected default logger")
	}
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	t.Run("adds single step", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "test-step"})

		if len(p.StepNames()) != 1 {
			t.Errorf("expected 1 step, got %v", p.StepNames())
		}
	})

	t.Run("adds multiple steps with AddSteps", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(&mockStep{name: "a"}, &mockStep{name: "b"}, &mockStep{name: "c"})

		want := []string{"a", "b", "c"}
		if !reflect.DeepEqual(p.StepNames(), want) {
			t.Errorf("StepNames() = %v, want %v", p.StepNames(), want)
		}
	})
}

// TestPipelineExecute tests step execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("runs steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		record := func(name string) *mockStep {
			return &mockStep{name: name, doFunc: func(_ context.Context, _ *Analysis) error {
				order = append(order, name)
				return nil
			}}
		}

		p := New()
		p.AddSteps(record("first"), record("second"), record("third"))

		if err := p.Execute(context.Background(), &Analysis{URL: "https://acme.example"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(order, []string{"first", "second", "third"}) {
			t.Errorf("unexpected order %v", order)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("boom")
		first := &mockStep{name: "first"}
		failing := &mockStep{name: "failing", doFunc: func(_ context.Context, _ *Analysis) error {
			return stepErr
		}}
		last := &mockStep{name: "last"}

		p := New()
		p.AddSteps(first, failing, last)

		err := p.Execute(context.Background(), &Analysis{})
		if !errors.Is(err, stepErr) {
			t.Errorf("expected step error, got %v", err)
		}
		if first.callCount != 1 || failing.callCount != 1 {
			t.Error("expected first two steps to run")
		}
		if last.callCount != 0 {
			t.Error("expected last step to be skipped")
		}
	})

	t.Run("respects cancellation", func(t *testing.T) {
		t.Parallel()

		step := &mockStep{name: "never"}
		p := New()
		p.AddStep(step)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := p.Execute(ctx, &Analysis{}); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("expected step not to run")
		}
	})

	t.Run("steps share state", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(
			&mockStep{name: "write", doFunc: func(_ context.Context, a *Analysis) error {
				a.URL = "changed"
				return nil
			}},
			&mockStep{name: "read", doFunc: func(_ context.Context, a *Analysis) error {
				if a.URL != "changed" {
					return errors.New("state not shared")
				}
				return nil
			}},
		)

		if err := p.Execute(context.Background(), &Analysis{}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
