package repository

import (
	"sort"
	"time"

	"stockflow-api/internal/model"
)

type TransactionRepository interface {
	FindAll() []model.Transaction
	FindByID(id string) (*model.Transaction, error)
	FindByProduct(productID string) []model.Transaction
	GetStockMovement(startDate, endDate time.Time) []StockMovementData

	Prepend(tx *Dataset, transactions ...model.Transaction)
	Get(tx *Dataset, id string) (*model.Transaction, error)
	Update(tx *Dataset, transaction model.Transaction) error
	Delete(tx *Dataset, id string) error
	ReplaceAll(tx *Dataset, transactions []model.Transaction)
}

// StockMovementData untuk chart data
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

type transactionRepo struct {
	db *MemDB
}

func NewTransactionRepo(db *MemDB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) FindAll() []model.Transaction {
	var transactions []model.Transaction
	r.db.View(func(d *Dataset) {
		transactions = append([]model.Transaction(nil), d.Transactions...)
	})
	return transactions
}

func (r *transactionRepo) FindByID(id string) (*model.Transaction, error) {
	var (
		transaction model.Transaction
		err         error
	)
	r.db.View(func(d *Dataset) {
		idx := indexOfTransaction(d, id)
		if idx < 0 {
			err = ErrRecordNotFound
			return
		}
		transaction = d.Transactions[idx]
	})
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// FindByProduct returns the history of one product, newest first.
func (r *transactionRepo) FindByProduct(productID string) []model.Transaction {
	var history []model.Transaction
	r.db.View(func(d *Dataset) {
		for _, t := range d.Transactions {
			if t.ProductID == productID {
				history = append(history, t)
			}
		}
	})
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})
	return history
}

// GetStockMovement aggregates inbound and outbound quantities per day
func (r *transactionRepo) GetStockMovement(startDate, endDate time.Time) []StockMovementData {
	byDay := map[string]*StockMovementData{}
	r.db.View(func(d *Dataset) {
		for _, t := range d.Transactions {
			if t.Date.Before(startDate) || t.Date.After(endDate) {
				continue
			}
			day := t.Date.Format("2006-01-02")
			data, ok := byDay[day]
			if !ok {
				data = &StockMovementData{Date: day}
				byDay[day] = data
			}
			if t.Type == model.TxIn {
				data.Inbound += t.Quantity
			} else {
				data.Outbound += t.Quantity
			}
		}
	})

	results := make([]StockMovementData, 0, len(byDay))
	for _, data := range byDay {
		results = append(results, *data)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Date < results[j].Date })
	return results
}

func (r *transactionRepo) Prepend(tx *Dataset, transactions ...model.Transaction) {
	merged := make([]model.Transaction, 0, len(transactions)+len(tx.Transactions))
	merged = append(merged, transactions...)
	tx.Transactions = append(merged, tx.Transactions...)
}

func (r *transactionRepo) Get(tx *Dataset, id string) (*model.Transaction, error) {
	idx := indexOfTransaction(tx, id)
	if idx < 0 {
		return nil, ErrRecordNotFound
	}
	transaction := tx.Transactions[idx]
	return &transaction, nil
}

func (r *transactionRepo) Update(tx *Dataset, transaction model.Transaction) error {
	idx := indexOfTransaction(tx, transaction.ID)
	if idx < 0 {
		return ErrRecordNotFound
	}
	tx.Transactions[idx] = transaction
	return nil
}

func (r *transactionRepo) Delete(tx *Dataset, id string) error {
	idx := indexOfTransaction(tx, id)
	if idx < 0 {
		return ErrRecordNotFound
	}
	tx.Transactions = append(tx.Transactions[:idx], tx.Transactions[idx+1:]...)
	return nil
}

func (r *transactionRepo) ReplaceAll(tx *Dataset, transactions []model.Transaction) {
	tx.Transactions = append([]model.Transaction(nil), transactions...)
}

func indexOfTransaction(d *Dataset, id string) int {
	for i := range d.Transactions {
		if d.Transactions[i].ID == id {
			return i
		}
	}
	return -1
}
