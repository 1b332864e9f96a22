package checkout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jcmexdev/greyden-storefront/internal/cart"
)

// Step is a single unit of work in an order submission.
// Each step must be able to undo its effects if a later step fails.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// Pipeline runs Steps in order and rolls back on failure.
type Pipeline struct {
	steps []Step
}

func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Run executes the steps sequentially. If a step fails, every previously
// successful step is compensated, most recent first, and the error returned.
func (p *Pipeline) Run(ctx context.Context) error {
	var done []Step

	for _, step := range p.steps {
		slog.DebugContext(ctx, "executing checkout step", "step", step.Name())
		if err := step.Execute(ctx); err != nil {
			if len(done) > 0 {
				slog.WarnContext(ctx, "checkout step failed, rolling back", "step", step.Name(), "error", err)
			}
			p.rollback(ctx, done)
			return err
		}
		done = append(done, step)
	}
	return nil
}

func (p *Pipeline) rollback(ctx context.Context, steps []Step) {
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		if err := step.Compensate(ctx); err != nil {
			slog.ErrorContext(ctx, "CRITICAL: failed to compensate checkout step", "step", step.Name(), "error", err)
		}
	}
}

// --- ValidateFormStep ---

type ValidateFormStep struct {
	form *Form
}

func NewValidateFormStep(form *Form) *ValidateFormStep {
	return &ValidateFormStep{form: form}
}

func (s *ValidateFormStep) Name() string { return "Validate_Form_Step" }

func (s *ValidateFormStep) Execute(ctx context.Context) error {
	if !s.form.Validate() {
		return &ValidationError{Fields: s.form.Errors()}
	}
	return nil
}

// Compensate is a no-op: validation has no side effects.
func (s *ValidateFormStep) Compensate(ctx context.Context) error { return nil }

// --- ClearCartStep ---

type ClearCartStep struct {
	store    CartStore
	snapshot []cart.LineItem
}

func NewClearCartStep(store CartStore) *ClearCartStep {
	return &ClearCartStep{store: store}
}

func (s *ClearCartStep) Name() string { return "Clear_Cart_Step" }

func (s *ClearCartStep) Execute(ctx context.Context) error {
	s.snapshot = s.store.Snapshot()
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Compensate puts the cleared cart back.
func (s *ClearCartStep) Compensate(ctx context.Context) error {
	if s.snapshot == nil {
		return nil
	}
	return s.store.Replace(ctx, s.snapshot)
}

// --- PlaceOrderStep ---

type PlaceOrderStep struct {
	sink  OrderSink
	order Order
}

func NewPlaceOrderStep(sink OrderSink, order Order) *PlaceOrderStep {
	return &PlaceOrderStep{sink: sink, order: order}
}

func (s *PlaceOrderStep) Name() string { return "Place_Order_Step" }

func (s *PlaceOrderStep) Execute(ctx context.Context) error {
	if err := s.sink.PlaceOrder(ctx, s.order); err != nil {
		return fmt.Errorf("failed to place order %s: %w", s.order.Reference, err)
	}
	return nil
}

// Compensate is empty: it is the last step.
func (s *PlaceOrderStep) Compensate(ctx context.Context) error { return nil }

// ValidationError carries every field error of a rejected form.
type ValidationError struct {
	Fields map[Field]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout: %d invalid field(s)", len(e.Fields))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidForm
}
