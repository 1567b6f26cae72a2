package models

import "time"

// Transaction is a placed order. IsPaid flips when the owner approves the
// uploaded proof of payment.
type Transaction struct {
	ID          int64     `json:"id"`
	TotalAmount int64     `json:"total_amount"`
	IsPaid      bool      `json:"is_paid"`
	Address     string    `json:"address"`
	PostCode    string    `json:"post_code"`
	PhoneNumber string    `json:"phone_number"`
	City        string    `json:"city"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionDetail is one product line of an order, as returned by the
// transaction listing endpoints. The parent order rides along under
// product_transaction.
type TransactionDetail struct {
	ID          int64        `json:"id"`
	ProductID   int64        `json:"product_id"`
	Quantity    int          `json:"quantity"`
	Price       int64        `json:"price"`
	Product     *Product     `json:"product"`
	Transaction *Transaction `json:"product_transaction"`
}
