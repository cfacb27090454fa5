package domain

// PlaceholderImageURL is rendered for items without an image of their own.
const PlaceholderImageURL = "https://placehold.co/400x300?text=No+Image"

// Item is the canonical catalog record, independent of the server's
// field-naming variants.
type Item struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"image_url"`
	CategoryName string  `json:"category"`
}

// Category is a canonical category record. The ID keeps its wire form
// (some endpoints key categories numerically, some by name) and is used
// verbatim in list filters.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CartLine is one entry of the authenticated user's cart.
type CartLine struct {
	ItemID int     `json:"item_id"`
	Name   string  `json:"name"`
	Qty    int     `json:"qty"`
	Price  float64 `json:"price"`
}

// Subtotal is qty times unit price, computed on demand.
func (l CartLine) Subtotal() float64 {
	return float64(l.Qty) * l.Price
}

// Cart is the full server-side cart as of the last fetch. It has no
// identity of its own and is never mutated locally.
type Cart struct {
	Lines []CartLine `json:"items"`
}

// Total sums the line subtotals. It is recomputed from the current
// lines on every call, never cached.
func (c Cart) Total() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

// Empty reports whether the cart holds no lines.
func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}
