package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"
)

// TransactionFilter narrows the movement history. Zero fields match all.
type TransactionFilter struct {
	Search    string
	Type      model.TransactionType
	ProductID string
	From      time.Time
	To        time.Time
}

type TransactionService interface {
	CreateBatch(actor *model.User, direction model.TransactionType, items []model.BatchItem) ([]model.Transaction, error)
	EditTransaction(actor *model.User, id string, patch model.TransactionPatch) (*model.Transaction, error)
	DeleteTransaction(actor *model.User, id string) error
	GetAllTransactions(filter TransactionFilter) []model.Transaction
	GetTransactionByID(id string) (*model.Transaction, error)
	ProductHistory(productID string) []model.Transaction
}

type transactionService struct {
	base
}

func NewTransactionService(deps Dependencies) TransactionService {
	return &transactionService{newBase(deps)}
}

// CreateBatch applies an inward or outward submission atomically.
func (s *transactionService) CreateBatch(actor *model.User, direction model.TransactionType, items []model.BatchItem) ([]model.Transaction, error) {
	if !direction.Valid() {
		return nil, ErrInvalidDirection
	}
	capability, action := model.CapInwardStock, model.ActionInwardBatch
	if direction == model.TxOut {
		capability, action = model.CapOutwardStock, model.ActionOutwardBatch
	}
	if err := s.authorize(actor, capability); err != nil {
		return nil, err
	}

	lines := make([]model.BatchItem, 0, len(items))
	for _, item := range items {
		if item.ProductID == "" || item.Quantity <= 0 {
			continue
		}
		lines = append(lines, item)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyBatch
	}

	var (
		created []model.Transaction
		entry   model.LogEntry
	)
	err := s.DB.Transaction(func(tx *repository.Dataset) error {
		// Stok keluar dicek terhadap stok sebelum batch, per baris
		if direction == model.TxOut {
			var shortages []ShortageLine
			for _, line := range lines {
				product, err := s.Products.Get(tx, line.ProductID)
				if err != nil {
					continue
				}
				if line.Quantity > product.Quantity {
					shortages = append(shortages, ShortageLine{
						ProductID:   product.ID,
						ProductName: product.Name,
						Requested:   line.Quantity,
						Available:   product.Quantity,
					})
				}
			}
			if len(shortages) > 0 {
				return &StockShortageError{Lines: shortages}
			}
		}

		now := s.Clock()
		for _, line := range lines {
			product, err := s.Products.Get(tx, line.ProductID)
			if err != nil {
				continue
			}
			t := model.Transaction{
				ID:          s.NewID(),
				ProductID:   product.ID,
				ProductName: product.Name,
				Type:        direction,
				Quantity:    line.Quantity,
				Date:        now,
				Notes:       line.Notes,
			}
			if err := s.Products.UpdateStock(tx, product.ID, product.Quantity+t.StockDelta(), now); err != nil {
				return err
			}
			created = append(created, t)
		}

		s.Transactions.Prepend(tx, created...)
		entry = s.audit(tx, actor, action, fmt.Sprintf("Processed batch of %d items.", len(created)), model.ModuleOperations)
		return nil
	})
	if err != nil {
		var shortage *StockShortageError
		if errors.As(err, &shortage) {
			s.Metrics.BatchRejected("insufficient_stock")
		}
		return nil, err
	}

	s.Metrics.TransactionsCreated(string(direction), len(created))
	s.committed(entry)
	return created, nil
}

// EditTransaction changes quantity, date or notes and moves stock by the
// quantity difference.
func (s *transactionService) EditTransaction(actor *model.User, id string, patch model.TransactionPatch) (*model.Transaction, error) {
	if err := s.authorize(actor, model.CapViewReports); err != nil {
		return nil, err
	}
	if err := validate(&patch); err != nil {
		return nil, err
	}

	var (
		updated model.Transaction
		entry   model.LogEntry
	)
	err := s.DB.Transaction(func(tx *repository.Dataset) error {
		existing, err := s.Transactions.Get(tx, id)
		if err != nil {
			return ErrTransactionNotFound
		}
		oldQty := existing.Quantity
		if patch.Quantity != nil {
			existing.Quantity = *patch.Quantity
		}
		if patch.Date != nil {
			existing.Date = *patch.Date
		}
		if patch.Notes != nil {
			existing.Notes = *patch.Notes
		}

		details := fmt.Sprintf("Updated transaction %s.", existing.ID)
		if diff := existing.Quantity - oldQty; diff != 0 {
			if product, err := s.Products.Get(tx, existing.ProductID); err == nil {
				adjustment := diff
				if existing.Type == model.TxOut {
					adjustment = -diff
				}
				if err := s.Products.UpdateStock(tx, product.ID, product.Quantity+adjustment, s.Clock()); err != nil {
					return err
				}
				details += fmt.Sprintf(" Stock auto-adjusted by %+d.", adjustment)
			}
		}

		if err := s.Transactions.Update(tx, *existing); err != nil {
			return err
		}
		updated = *existing
		entry = s.audit(tx, actor, model.ActionUpdateTransaction, details, model.ModuleReports)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.committed(entry)
	return &updated, nil
}

// DeleteTransaction removes a record and reverses its stock effect, never
// letting the product go below zero.
func (s *transactionService) DeleteTransaction(actor *model.User, id string) error {
	if err := s.authorize(actor, model.CapDeleteTransaction); err != nil {
		return err
	}

	var entry model.LogEntry
	err := s.DB.Transaction(func(tx *repository.Dataset) error {
		existing, err := s.Transactions.Get(tx, id)
		if err != nil {
			return ErrTransactionNotFound
		}
		details := fmt.Sprintf("Deleted transaction %s for %s.", existing.ID, existing.ProductName)
		if product, err := s.Products.Get(tx, existing.ProductID); err == nil {
			newQty := max(product.Quantity-existing.StockDelta(), 0)
			if err := s.Products.UpdateStock(tx, product.ID, newQty, s.Clock()); err != nil {
				return err
			}
			details += " Stock reverted."
		}
		if err := s.Transactions.Delete(tx, existing.ID); err != nil {
			return err
		}
		entry = s.audit(tx, actor, model.ActionDeleteTransaction, details, model.ModuleReports)
		return nil
	})
	if err != nil {
		return err
	}

	s.committed(entry)
	return nil
}

func (s *transactionService) GetAllTransactions(filter TransactionFilter) []model.Transaction {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var result []model.Transaction
	for _, t := range s.Transactions.FindAll() {
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.ProductID != "" && t.ProductID != filter.ProductID {
			continue
		}
		if !filter.From.IsZero() && t.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && t.Date.After(filter.To) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.ProductName), search) &&
			!strings.Contains(strings.ToLower(t.Notes), search) {
			continue
		}
		result = append(result, t)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result
}

func (s *transactionService) GetTransactionByID(id string) (*model.Transaction, error) {
	t, err := s.Transactions.FindByID(id)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	return t, nil
}

func (s *transactionService) ProductHistory(productID string) []model.Transaction {
	return s.Transactions.FindByProduct(productID)
}
