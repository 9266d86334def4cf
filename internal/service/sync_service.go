package service

import (
	"fmt"
	"io"
	"strings"

	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"
	"stockflow-api/internal/sheet"
)

// Smart update actions understood by the assistant integration.
const (
	SmartAddStock    = "ADD_STOCK"
	SmartRemoveStock = "REMOVE_STOCK"
)

// SmartUpdate is one instruction extracted from free text by the AI assistant.
type SmartUpdate struct {
	Action      string `json:"action"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// smartUpdateNote marks transactions created by the assistant.
const smartUpdateNote = "AI Smart Update"

type SyncService interface {
	ImportProducts(actor *model.User, data string) (int, error)
	ExportProducts(actor *model.User, w io.Writer) error
	SmartUpdate(actor *model.User, updates []SmartUpdate) (int, error)
}

type syncService struct {
	base
}

func NewSyncService(deps Dependencies) SyncService {
	return &syncService{newBase(deps)}
}

// ImportProducts replaces the whole product store with the parsed rows.
func (s *syncService) ImportProducts(actor *model.User, data string) (int, error) {
	if err := s.authorize(actor, model.CapImportExport); err != nil {
		return 0, err
	}

	products, err := sheet.ParseProducts(data, s.NewID, s.Clock())
	if err != nil {
		return 0, fmt.Errorf("parse import: %w", err)
	}
	if len(products) == 0 {
		return 0, ErrEmptyImport
	}

	var entry model.LogEntry
	if err := s.DB.Transaction(func(tx *repository.Dataset) error {
		s.Products.ReplaceAll(tx, products)
		entry = s.audit(tx, actor, model.ActionImportData, fmt.Sprintf("Imported %d products from sheet.", len(products)), model.ModuleSystem)
		return nil
	}); err != nil {
		return 0, err
	}

	s.committed(entry)
	return len(products), nil
}

func (s *syncService) ExportProducts(actor *model.User, w io.Writer) error {
	if err := s.authorize(actor, model.CapImportExport); err != nil {
		return err
	}
	return sheet.WriteProducts(w, s.Products.FindAll())
}

// SmartUpdate applies assistant instructions. Each instruction goes to the
// first product whose name contains the given text, ignoring case.
func (s *syncService) SmartUpdate(actor *model.User, updates []SmartUpdate) (int, error) {
	if err := s.authorizeAny(actor, model.CapAddProduct, model.CapEditProduct); err != nil {
		return 0, err
	}

	var (
		applied int
		counts  = map[model.TransactionType]int{}
		entry   model.LogEntry
	)
	err := s.DB.Transaction(func(tx *repository.Dataset) error {
		now := s.Clock()
		for _, u := range updates {
			var direction model.TransactionType
			switch u.Action {
			case SmartAddStock:
				direction = model.TxIn
			case SmartRemoveStock:
				direction = model.TxOut
			default:
				continue
			}
			needle := strings.ToLower(strings.TrimSpace(u.ProductName))
			if needle == "" || u.Quantity <= 0 {
				continue
			}

			var target *model.Product
			for i := range tx.Products {
				if strings.Contains(strings.ToLower(tx.Products[i].Name), needle) {
					target = &tx.Products[i]
					break
				}
			}
			if target == nil {
				continue
			}

			t := model.Transaction{
				ID:          s.NewID(),
				ProductID:   target.ID,
				ProductName: target.Name,
				Type:        direction,
				Quantity:    u.Quantity,
				Date:        now,
				Notes:       smartUpdateNote,
			}
			// REMOVE_STOCK is not floored at zero
			if err := s.Products.UpdateStock(tx, target.ID, target.Quantity+t.StockDelta(), now); err != nil {
				return err
			}
			s.Transactions.Prepend(tx, t)
			counts[direction]++
			applied++
		}
		entry = s.audit(tx, actor, model.ActionAISmartUpdate, fmt.Sprintf("AI Agent applied updates to %d products", applied), model.ModuleAIAssistant)
		return nil
	})
	if err != nil {
		return 0, err
	}

	for direction, n := range counts {
		s.Metrics.TransactionsCreated(string(direction), n)
	}
	s.committed(entry)
	return applied, nil
}
