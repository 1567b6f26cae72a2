package models

// CartLine is one line of the remote cart, mirrored locally. ProductID is
// unique within a cart; quantity changes mutate the existing line rather
// than adding a duplicate.
//
// UnitPrice and Product are snapshots taken from the product record at
// fetch time. Between refreshes the local mirror treats them as immutable
// display data.
type CartLine struct {
	ProductID int64    `json:"product_id"`
	Quantity  int      `json:"quantity"`
	UnitPrice int64    `json:"unit_price"`
	Product   *Product `json:"product"`
}

// Subtotal is quantity times the unit price snapshot.
func (l CartLine) Subtotal() int64 {
	return int64(l.Quantity) * l.UnitPrice
}
