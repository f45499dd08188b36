package catalog

import "time"

// StockStatus is the enumerated availability state of a product.
type StockStatus string

const (
	StockInStock  StockStatus = "inStock"
	StockOut      StockStatus = "outOfStock"
	StockPreOrder StockStatus = "preOrder"
)

type Slug struct {
	Current string `json:"current"`
}

// Image is a reference to an asset in the content store. Use
// Client.ImageURL to turn it into a servable CDN URL.
type Image struct {
	Asset struct {
		Ref string `json:"_ref"`
	} `json:"asset"`
}

type Product struct {
	ID          string      `json:"_id"`
	Name        string      `json:"name"`
	Slug        Slug        `json:"slug"`
	Price       float64     `json:"price"`
	Images      []Image     `json:"images"`
	Category    string      `json:"category"`
	StockStatus StockStatus `json:"stockStatus"`
	IsFeatured  bool        `json:"isFeatured"`
	IsPopular   bool        `json:"isPopular"`
	CreatedAt   time.Time   `json:"_createdAt"`
}

type SiteSettings struct {
	Title                 string `json:"title"`
	FeaturedProductsLimit int    `json:"featuredProductsLimit"`
}
