package httpx

import (
	"github.com/jcmexdev/greyden-storefront/internal/cart"
	"github.com/jcmexdev/greyden-storefront/internal/catalog"
	"github.com/jcmexdev/greyden-storefront/internal/checkout"
	"github.com/jcmexdev/greyden-storefront/internal/notify"
	"github.com/jcmexdev/greyden-storefront/internal/pricing"
)

type LandingResponse struct {
	Shop        string            `json:"shop"`
	Title       string            `json:"title"`
	Subtitle    string            `json:"subtitle"`
	Description string            `json:"description"`
	Links       map[string]string `json:"links"`
}

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type SizeResponse struct {
	Size       int     `json:"size"`
	Price      float64 `json:"price"`
	PriceLabel string  `json:"priceLabel"`
}

type DrinkResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Category    string         `json:"category"`
	Price       *float64       `json:"price,omitempty"`
	PriceLabel  string         `json:"priceLabel,omitempty"`
	Sizes       []SizeResponse `json:"sizes,omitempty"`
}

type MenuResponse struct {
	Categories       []CategoryResponse `json:"categories"`
	SelectedCategory string             `json:"selectedCategory"`
	Drinks           []DrinkResponse    `json:"drinks"`
}

type LineItemResponse struct {
	ID           string  `json:"id"`
	DrinkID      string  `json:"drinkId"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	PriceLabel   string  `json:"priceLabel"`
	SelectedSize int     `json:"selectedSize,omitempty"`
}

type NotificationResponse struct {
	Phase    string `json:"phase"`
	Message  string `json:"message,omitempty"`
	ItemName string `json:"itemName,omitempty"`
}

type OrderViewResponse struct {
	MenuResponse
	SelectedSizes map[string]int           `json:"selectedSizes"`
	Cart          []LineItemResponse       `json:"cart"`
	CartCount     int                      `json:"cartCount"`
	Breakdown     pricing.DisplayBreakdown `json:"breakdown"`
	Notification  NotificationResponse     `json:"notification"`
	CanCheckout   bool                     `json:"canCheckout"`
}

type SelectSizeRequest struct {
	Size int `json:"size"`
}

type AddItemRequest struct {
	DrinkID string `json:"drinkId"`
	Size    int    `json:"size,omitempty"`
}

type CartResponse struct {
	Item      *LineItemResponse        `json:"item,omitempty"`
	Cart      []LineItemResponse       `json:"cart"`
	CartCount int                      `json:"cartCount"`
	Breakdown pricing.DisplayBreakdown `json:"breakdown"`
}

type FormResponse struct {
	Values map[string]string `json:"values"`
	Errors map[string]string `json:"errors"`
}

type CheckoutViewResponse struct {
	Items     []LineItemResponse       `json:"items"`
	Breakdown pricing.DisplayBreakdown `json:"breakdown"`
	Form      FormResponse             `json:"form"`
}

type FormEditRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type FormEditResponse struct {
	Field string       `json:"field"`
	Value string       `json:"value"`
	Form  FormResponse `json:"form"`
}

type SubmitRequest struct {
	Values map[string]string `json:"values,omitempty"`
}

type RedirectResponse struct {
	Reason   string `json:"reason"`
	Location string `json:"location"`
}

type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors"`
}

type ConfirmationResponse struct {
	Reference string                   `json:"reference"`
	Message   string                   `json:"message"`
	Location  string                   `json:"location"`
	Breakdown pricing.DisplayBreakdown `json:"breakdown"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func mapCategories(cats []catalog.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(cats))
	for i, c := range cats {
		out[i] = CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
	}
	return out
}

func mapDrinks(drinks []catalog.Drink) []DrinkResponse {
	out := make([]DrinkResponse, len(drinks))
	for i, d := range drinks {
		resp := DrinkResponse{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Category:    d.Category,
		}
		if d.Price != nil {
			p := *d.Price
			resp.Price = &p
			resp.PriceLabel = pricing.Format(p)
		}
		for _, s := range d.Sizes {
			resp.Sizes = append(resp.Sizes, SizeResponse{
				Size:       s.Size,
				Price:      s.Price,
				PriceLabel: pricing.Format(s.Price),
			})
		}
		out[i] = resp
	}
	return out
}

func mapLineItem(it cart.LineItem) LineItemResponse {
	return LineItemResponse{
		ID:           it.ID,
		DrinkID:      it.DrinkID,
		Name:         it.Name,
		Price:        it.Price,
		PriceLabel:   pricing.Format(it.Price),
		SelectedSize: it.SelectedSize,
	}
}

func mapLineItems(items []cart.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, len(items))
	for i, it := range items {
		out[i] = mapLineItem(it)
	}
	return out
}

func mapNotification(s notify.State) NotificationResponse {
	resp := NotificationResponse{Phase: s.Phase.String()}
	if s.Notice != nil {
		resp.Message = s.Notice.Message
		resp.ItemName = s.Notice.ItemName
	}
	return resp
}

func mapFields(m map[checkout.Field]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}

func mapForm(f *checkout.Form) FormResponse {
	return FormResponse{Values: mapFields(f.Values()), Errors: mapFields(f.Errors())}
}
