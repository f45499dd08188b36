package cart

// LineItem is one distinct product entry in a cart. Name, price and image
// are snapshots taken when the product was first added; a later catalog
// change does not touch items already in the cart.
type LineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

// Product carries the fields copied into a new line item on add.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Direction selects how AdjustQuantity changes an item.
type Direction int

const (
	Increment Direction = iota
	Decrement
)
