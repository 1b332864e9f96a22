package cart

import (
	"encoding/json"
	"fmt"
)

// LineItem is one drink placed in the cart, with its size and gross price
// resolved at add time. ID is unique per add and is not the drink id.
type LineItem struct {
	ID           string  `json:"id"`
	DrinkID      string  `json:"drinkId"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	SelectedSize int     `json:"selectedSize,omitempty"`
}

// GrossPrice is the tax-inclusive price of the line.
func (i LineItem) GrossPrice() float64 {
	return i.Price
}

// Encode serializes a cart snapshot in the durable format: a JSON array of
// line items. A nil cart encodes as an empty array.
func Encode(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("cart: encode: %w", err)
	}
	return data, nil
}

// Decode parses the durable format back into line items.
func Decode(data []byte) ([]LineItem, error) {
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("cart: decode: %w", err)
	}
	for i, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("cart: decode: line %d has no id", i)
		}
	}
	return items, nil
}
