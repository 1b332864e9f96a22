package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/greyden-storefront/internal/storefront/infra/httpx/middlewares"
)

// NewRouter mounts the storefront routes under basePath and wraps the
// result in an otelhttp server handler.
func NewRouter(handler *Handler, basePath string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachRequestContext)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	routes := func(r chi.Router) {
		r.Get("/", handler.Landing)
		r.Get("/healthz", handler.Health)
		r.Get("/menu", handler.Menu)

		r.Route("/order", func(r chi.Router) {
			r.Get("/", handler.OrderView)
			r.Put("/sizes/{drinkID}", handler.SelectSize)
			r.Post("/items", handler.AddItem)
			r.Delete("/items/{id}", handler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", handler.CheckoutView)
			r.Post("/", handler.SubmitCheckout)
			r.Patch("/form", handler.EditForm)
		})
	}

	if basePath == "" || basePath == "/" {
		routes(r)
	} else {
		r.Route(basePath, routes)
	}

	return otelhttp.NewHandler(r, "storefront",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
