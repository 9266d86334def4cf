package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"
	"stockflow-api/internal/sheet"
)

// LogFilter narrows the audit log. Date is a YYYY-MM-DD prefix of the timestamp.
type LogFilter struct {
	Date   string
	Module string
	Action string
	UserID string
	Search string
}

func (f LogFilter) match(l model.LogEntry) bool {
	if f.Date != "" && !strings.HasPrefix(l.Timestamp.Format("2006-01-02"), f.Date) {
		return false
	}
	if f.Module != "" && l.Module != f.Module {
		return false
	}
	if f.Action != "" && l.Action != f.Action {
		return false
	}
	if f.UserID != "" && l.UserID != f.UserID {
		return false
	}
	if search := strings.ToLower(f.Search); search != "" {
		return strings.Contains(strings.ToLower(l.Details), search) ||
			strings.Contains(strings.ToLower(l.Action), search) ||
			strings.Contains(strings.ToLower(l.UserName), search)
	}
	return true
}

type SystemService interface {
	Backup(actor *model.User) (*model.Snapshot, error)
	Restore(actor *model.User, payload []byte) (model.View, error)
	Reset(actor *model.User) (model.View, error)
	ListLogs(actor *model.User, filter LogFilter) ([]model.LogEntry, error)
	ExportLogs(actor *model.User, filter LogFilter, w io.Writer) error
	GetTheme(ctx context.Context) (model.Theme, error)
	UpdateTheme(ctx context.Context, actor *model.User, theme model.Theme) (model.Theme, error)
}

type systemService struct {
	base
}

func NewSystemService(deps Dependencies) SystemService {
	return &systemService{newBase(deps)}
}

func (s *systemService) Backup(actor *model.User) (*model.Snapshot, error) {
	if err := s.authorize(actor, model.CapManageSettings); err != nil {
		return nil, err
	}
	data := s.DB.Snapshot()
	return &model.Snapshot{
		Products:     nonNil(data.Products),
		Transactions: nonNil(data.Transactions),
		Logs:         data.Logs,
		ExportedAt:   s.Clock(),
	}, nil
}

// ParseSnapshot decodes a backup document. Only the presence of a products
// array is required; a missing transactions field restores as empty.
func ParseSnapshot(payload []byte) (*model.Snapshot, error) {
	var snapshot model.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if snapshot.Products == nil {
		return nil, ErrInvalidBackup
	}
	if snapshot.Transactions == nil {
		snapshot.Transactions = []model.Transaction{}
	}
	return &snapshot, nil
}

// Restore replaces products and transactions from a backup. Logs and users
// are kept.
func (s *systemService) Restore(actor *model.User, payload []byte) (model.View, error) {
	if err := s.authorize(actor, model.CapManageSettings); err != nil {
		return "", err
	}
	snapshot, err := ParseSnapshot(payload)
	if err != nil {
		return "", err
	}

	var entry model.LogEntry
	if err := s.DB.Transaction(func(tx *repository.Dataset) error {
		s.Products.ReplaceAll(tx, snapshot.Products)
		s.Transactions.ReplaceAll(tx, snapshot.Transactions)
		entry = s.audit(tx, actor, model.ActionSystemRestore, "Restored system data from backup file", model.ModuleSystem)
		return nil
	}); err != nil {
		return "", err
	}

	s.committed(entry)
	return model.ViewDashboard, nil
}

// Reset wipes products, transactions and logs, then records the reset itself.
func (s *systemService) Reset(actor *model.User) (model.View, error) {
	if err := s.authorize(actor, model.CapManageSettings); err != nil {
		return "", err
	}

	var entry model.LogEntry
	if err := s.DB.Transaction(func(tx *repository.Dataset) error {
		s.Products.ReplaceAll(tx, nil)
		s.Transactions.ReplaceAll(tx, nil)
		s.Logs.Clear(tx)
		entry = s.audit(tx, actor, model.ActionSystemReset, "Performed factory reset of data", model.ModuleSystem)
		return nil
	}); err != nil {
		return "", err
	}

	s.Logger.Warn("factory reset", "user_id", actorID(actor))
	s.committed(entry)
	return model.ViewDashboard, nil
}

func (s *systemService) ListLogs(actor *model.User, filter LogFilter) ([]model.LogEntry, error) {
	if err := s.authorize(actor, model.CapManageSettings); err != nil {
		return nil, err
	}
	var result []model.LogEntry
	for _, l := range s.Logs.FindAll() {
		if filter.match(l) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (s *systemService) ExportLogs(actor *model.User, filter LogFilter, w io.Writer) error {
	logs, err := s.ListLogs(actor, filter)
	if err != nil {
		return err
	}
	return sheet.WriteLogs(w, logs)
}

func (s *systemService) GetTheme(ctx context.Context) (model.Theme, error) {
	return s.Preferences.GetTheme(ctx)
}

func (s *systemService) UpdateTheme(ctx context.Context, actor *model.User, theme model.Theme) (model.Theme, error) {
	if err := s.authorize(actor, model.CapManageSettings); err != nil {
		return model.Theme{}, err
	}
	if err := validate(&theme); err != nil {
		return model.Theme{}, err
	}
	if err := s.Preferences.SaveTheme(ctx, theme, actor.ID); err != nil {
		return model.Theme{}, fmt.Errorf("save theme: %w", err)
	}
	return theme, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
