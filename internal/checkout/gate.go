package checkout

import (
	"context"
	"log/slog"

	"github.com/jcmexdev/greyden-storefront/internal/cart"
	"github.com/jcmexdev/greyden-storefront/internal/pricing"
)

// OrderViewPath is where a visitor without a usable cart is sent.
const OrderViewPath = "/order"

// CartStore is the part of the cart store checkout needs.
type CartStore interface {
	Restore(ctx context.Context) (cart.Restored, error)
	Snapshot() []cart.LineItem
	Replace(ctx context.Context, items []cart.LineItem) error
	Clear(ctx context.Context) error
}

// RedirectReason says why the checkout view cannot be shown.
type RedirectReason string

const (
	ReasonCartMissing     RedirectReason = "cart_missing"
	ReasonCartUnreadable  RedirectReason = "cart_unreadable"
	ReasonCartEmpty       RedirectReason = "cart_empty"
	ReasonCartUnavailable RedirectReason = "cart_unavailable"
)

// Precondition is the outcome of Gate: either Ready or Redirect.
type Precondition interface {
	precondition()
}

// Ready carries the cart the checkout view renders, priced at CheckoutRate.
type Ready struct {
	Items     []cart.LineItem
	Breakdown pricing.Breakdown
}

// Redirect tells the presentation layer to send the visitor elsewhere.
type Redirect struct {
	Reason   RedirectReason
	Location string
}

func (Ready) precondition()    {}
func (Redirect) precondition() {}

// Gate restores the cart and decides whether checkout can be shown. It never
// fails: every problem becomes a Redirect to the order view.
func Gate(ctx context.Context, store CartStore) Precondition {
	restored, err := store.Restore(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "cart storage unavailable, redirecting to order view", "error", err)
		return Redirect{Reason: ReasonCartUnavailable, Location: OrderViewPath}
	}

	switch restored {
	case cart.RestoredNothing:
		return Redirect{Reason: ReasonCartMissing, Location: OrderViewPath}
	case cart.RestoredMalformed:
		return Redirect{Reason: ReasonCartUnreadable, Location: OrderViewPath}
	}

	items := store.Snapshot()
	if len(items) == 0 {
		return Redirect{Reason: ReasonCartEmpty, Location: OrderViewPath}
	}

	return Ready{
		Items:     items,
		Breakdown: pricing.Compute(items, pricing.CheckoutRate),
	}
}
