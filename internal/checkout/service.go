// Package checkout gates, validates and submits the mock checkout.
//
// There is no payment gateway: card fields are checked for format only and
// a successful submission clears the cart and hands the order to an
// OrderSink, which by default just logs it.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jcmexdev/greyden-storefront/internal/cart"
	"github.com/jcmexdev/greyden-storefront/internal/pricing"
)

const (
	ConfirmationMessage = "Order placed successfully! Thank you for your order."
	// LandingPath is where the visitor goes after a successful order.
	LandingPath = "/"
)

var (
	ErrInvalidForm = errors.New("checkout: form has invalid fields")
	ErrCartEmpty   = errors.New("checkout: cart is empty")
)

// Order is what a successful submission hands to the OrderSink.
type Order struct {
	Reference   string
	Items       []cart.LineItem
	Breakdown   pricing.Breakdown
	Customer    Customer
	SubmittedAt time.Time
}

// Customer holds the contact and delivery details of an order. Card data
// never leaves the form.
type Customer struct {
	Name    string
	Phone   string
	Email   string
	Address string
	City    string
}

// OrderSink receives placed orders.
type OrderSink interface {
	PlaceOrder(ctx context.Context, order Order) error
}

// LogSink writes placed orders to the structured log.
type LogSink struct{}

func (LogSink) PlaceOrder(ctx context.Context, order Order) error {
	slog.InfoContext(ctx, "order submitted",
		"reference", order.Reference,
		"items", len(order.Items),
		"total", pricing.Round2(order.Breakdown.Total),
		"customer", order.Customer.Name,
		"city", order.Customer.City,
	)
	return nil
}

// Confirmation is returned for a placed order.
type Confirmation struct {
	Reference string
	Message   string
	Location  string
	Breakdown pricing.Breakdown
}

type Service struct {
	store CartStore
	sink  OrderSink
	now   func() time.Time
}

func NewService(store CartStore, sink OrderSink) *Service {
	if sink == nil {
		sink = LogSink{}
	}
	return &Service{store: store, sink: sink, now: time.Now}
}

// Submit validates form and, when every field passes, clears the cart and
// places the order. On validation failure the returned error wraps
// ErrInvalidForm, the form keeps its values and carries all field errors.
func (s *Service) Submit(ctx context.Context, form *Form) (*Confirmation, error) {
	ctx, span := otel.Tracer("checkout").Start(ctx, "checkout.Submit")
	defer span.End()

	items := s.store.Snapshot()
	if len(items) == 0 {
		span.SetStatus(codes.Error, ErrCartEmpty.Error())
		return nil, ErrCartEmpty
	}

	values := form.Values()
	order := Order{
		Reference: uuid.NewString(),
		Items:     items,
		Breakdown: pricing.Compute(items, pricing.CheckoutRate),
		Customer: Customer{
			Name:    values[FieldName],
			Phone:   values[FieldPhone],
			Email:   values[FieldEmail],
			Address: values[FieldAddress],
			City:    values[FieldCity],
		},
		SubmittedAt: s.now().UTC(),
	}
	span.SetAttributes(
		attribute.String("order.reference", order.Reference),
		attribute.Int("order.items", len(items)),
	)

	pipeline := NewPipeline(
		NewValidateFormStep(form),
		NewClearCartStep(s.store),
		NewPlaceOrderStep(s.sink, order),
	)

	if err := pipeline.Run(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &Confirmation{
		Reference: order.Reference,
		Message:   ConfirmationMessage,
		Location:  LandingPath,
		Breakdown: order.Breakdown,
	}, nil
}
