package models

// Category is a product grouping managed by the shop owner.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product mirrors a backend product record. Price is in rupiah with no
// subunits; the backend owns pricing and stock, the client only displays
// them.
type Product struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	Image       string `json:"image"`
}
