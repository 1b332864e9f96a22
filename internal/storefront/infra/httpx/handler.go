package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/greyden-storefront/internal/cart"
	"github.com/jcmexdev/greyden-storefront/internal/catalog"
	"github.com/jcmexdev/greyden-storefront/internal/checkout"
	"github.com/jcmexdev/greyden-storefront/internal/notify"
	"github.com/jcmexdev/greyden-storefront/internal/pricing"
)

const shopName = "Greyden"

// NotificationSource exposes the current add-to-cart notification.
type NotificationSource interface {
	State() notify.State
}

// Handler serves the storefront views. There is one cart and at most one
// checkout attempt in progress per process.
type Handler struct {
	catalog  *catalog.Catalog
	store    *cart.Store
	notices  NotificationSource
	checkout *checkout.Service
	basePath string

	mu   sync.Mutex
	form *checkout.Form // nil until the checkout view is opened
}

func NewHandler(
	cat *catalog.Catalog,
	store *cart.Store,
	notices NotificationSource,
	svc *checkout.Service,
	basePath string,
) *Handler {
	if basePath == "" {
		basePath = "/"
	}
	return &Handler{
		catalog:  cat,
		store:    store,
		notices:  notices,
		checkout: svc,
		basePath: basePath,
	}
}

// Landing renders the home view.
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LandingResponse{
		Shop:        shopName,
		Title:       "Welcome to " + shopName,
		Subtitle:    "Specialty Coffee Crafted with Passion",
		Description: "Experience the finest coffee beans sourced from around the world, roasted to perfection, and brewed with care. Every cup tells a story.",
		Links: map[string]string{
			"menu":      h.link("/menu"),
			"order":     h.link("/order"),
			"findUs":    "https://maps.app.goo.gl/VBeFnjNY2e7GFeqQ9",
			"instagram": "https://www.instagram.com/greyden.eg/",
		},
	})
}

// Menu renders the read-only menu for the requested category.
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.menuFor(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusNotFound, "category_not_found", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

// OrderView restores the cart and renders the ordering view.
func (h *Handler) OrderView(w http.ResponseWriter, r *http.Request) {
	menu, err := h.menuFor(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusNotFound, "category_not_found", err.Error())
		return
	}

	if _, err := h.store.Restore(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "could not restore cart, continuing with an empty cart", "error", err)
	}

	items := h.store.Snapshot()
	writeJSON(w, http.StatusOK, OrderViewResponse{
		MenuResponse:  menu,
		SelectedSizes: h.store.SelectedSizes(),
		Cart:          mapLineItems(items),
		CartCount:     len(items),
		Breakdown:     pricing.Compute(items, pricing.OrderViewRate).Display(),
		Notification:  mapNotification(h.notices.State()),
		CanCheckout:   len(items) > 0,
	})
}

// SelectSize records the size picked for a drink on the order view.
func (h *Handler) SelectSize(w http.ResponseWriter, r *http.Request) {
	drink, err := h.catalog.Drink(chi.URLParam(r, "drinkID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "drink_not_found", err.Error())
		return
	}

	var req SelectSizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	if err := h.store.SelectSize(drink, req.Size); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "size_unavailable", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]map[string]int{
		"selectedSizes": h.store.SelectedSizes(),
	})
}

// AddItem appends a line item for a drink to the cart.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.DrinkID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "drinkId is required")
		return
	}

	drink, err := h.catalog.Drink(req.DrinkID)
	if err != nil {
		writeError(w, http.StatusNotFound, "drink_not_found", err.Error())
		return
	}

	item, err := h.store.AddItem(r.Context(), drink, req.Size)
	switch {
	case errors.Is(err, cart.ErrSizeUnavailable), errors.Is(err, cart.ErrNoSizes):
		writeError(w, http.StatusUnprocessableEntity, "size_unavailable", err.Error())
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "add to cart failed", "drink_id", drink.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "cart_storage_error", err.Error())
		return
	}

	added := mapLineItem(item)
	resp := h.cartResponse()
	resp.Item = &added
	writeJSON(w, http.StatusCreated, resp)
}

// RemoveItem drops a line item from the cart. Unknown ids are ignored.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RemoveItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.ErrorContext(r.Context(), "remove from cart failed", "error", err)
		writeError(w, http.StatusInternalServerError, "cart_storage_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// CheckoutView applies the checkout precondition and starts a new form.
func (h *Handler) CheckoutView(w http.ResponseWriter, r *http.Request) {
	switch p := checkout.Gate(r.Context(), h.store).(type) {
	case checkout.Redirect:
		h.redirect(w, string(p.Reason), p.Location)
	case checkout.Ready:
		form := checkout.NewForm()
		h.mu.Lock()
		h.form = form
		h.mu.Unlock()

		writeJSON(w, http.StatusOK, CheckoutViewResponse{
			Items:     mapLineItems(p.Items),
			Breakdown: p.Breakdown.Display(),
			Form:      mapForm(form),
		})
	}
}

// EditForm stores one field of the checkout form.
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	form := h.currentForm()
	if form == nil {
		writeError(w, http.StatusConflict, "checkout_not_started", "open the checkout view first")
		return
	}

	var req FormEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	field, err := checkout.ParseField(req.Field)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_field", err.Error())
		return
	}

	stored := form.Set(field, req.Value)
	writeJSON(w, http.StatusOK, FormEditResponse{
		Field: string(field),
		Value: stored,
		Form:  mapForm(form),
	})
}

// SubmitCheckout validates the form and places the order. The request body
// may carry {"values": {...}} to fill fields in the same call.
func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	form := h.currentForm()
	if form == nil {
		writeError(w, http.StatusConflict, "checkout_not_started", "open the checkout view first")
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	// Every name is checked before any value reaches the form.
	updates := make(map[checkout.Field]string, len(req.Values))
	for name, value := range req.Values {
		field, err := checkout.ParseField(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown_field", err.Error())
			return
		}
		updates[field] = value
	}
	for field, value := range updates {
		form.Set(field, value)
	}

	conf, err := h.checkout.Submit(r.Context(), form)
	switch {
	case errors.Is(err, checkout.ErrInvalidForm):
		writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
			Error:  "invalid_form",
			Errors: mapFields(form.Errors()),
		})
		return
	case errors.Is(err, checkout.ErrCartEmpty):
		h.redirect(w, string(checkout.ReasonCartEmpty), checkout.OrderViewPath)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "checkout failed", "error", err)
		writeError(w, http.StatusInternalServerError, "checkout_failed", err.Error())
		return
	}

	h.mu.Lock()
	if h.form == form {
		h.form = nil
	}
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, ConfirmationResponse{
		Reference: conf.Reference,
		Message:   conf.Message,
		Location:  h.link(conf.Location),
		Breakdown: conf.Breakdown.Display(),
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// menuFor resolves the category filter: empty selects the first category,
// and with no categories at all every drink is listed.
func (h *Handler) menuFor(categoryID string) (MenuResponse, error) {
	if categoryID == "" {
		if def, ok := h.catalog.DefaultCategory(); ok {
			categoryID = def.ID
		}
	}

	drinks := h.catalog.Drinks()
	if categoryID != "" {
		if _, err := h.catalog.Category(categoryID); err != nil {
			return MenuResponse{}, err
		}
		drinks = h.catalog.DrinksIn(categoryID)
	}

	return MenuResponse{
		Categories:       mapCategories(h.catalog.Categories()),
		SelectedCategory: categoryID,
		Drinks:           mapDrinks(drinks),
	}, nil
}

func (h *Handler) cartResponse() CartResponse {
	items := h.store.Snapshot()
	return CartResponse{
		Cart:      mapLineItems(items),
		CartCount: len(items),
		Breakdown: pricing.Compute(items, pricing.OrderViewRate).Display(),
	}
}

func (h *Handler) currentForm() *checkout.Form {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.form
}

// link prefixes an application path with the configured base path.
func (h *Handler) link(p string) string {
	return path.Join(h.basePath, p)
}

func (h *Handler) redirect(w http.ResponseWriter, reason, location string) {
	target := h.link(location)
	w.Header().Set("Location", target)
	writeJSON(w, http.StatusSeeOther, RedirectResponse{Reason: reason, Location: target})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
