package model

import "time"

type TransactionType string

const (
	TxIn  TransactionType = "IN"
	TxOut TransactionType = "OUT"
)

// Valid reports whether t is a known movement direction.
func (t TransactionType) Valid() bool {
	return t == TxIn || t == TxOut
}

// Transaction records one stock movement. ProductID may dangle once the
// product is deleted; ProductName is the name at creation time and is never
// resynced on rename.
type Transaction struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Type        TransactionType `json:"type" validate:"required,oneof=IN OUT"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"` // Qty harus > 0
	Date        time.Time       `json:"date"`
	Notes       string          `json:"notes,omitempty"`
}

// StockDelta is the signed effect of the movement on product quantity.
func (t Transaction) StockDelta() int {
	if t.Type == TxOut {
		return -t.Quantity
	}
	return t.Quantity
}

// BatchItem is one line of an inward or outward submission.
type BatchItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
}

// TransactionPatch holds the editable fields of a transaction.
// Type and ProductID are immutable after creation.
type TransactionPatch struct {
	Quantity *int       `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Date     *time.Time `json:"date,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
}
