package service

import (
	"errors"
	"fmt"
	"strings"

	"stockflow-api/pkg/validator"
)

var (
	ErrPermissionDenied    = errors.New("permission denied")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrEmptyBatch          = errors.New("batch has no valid items")
	ErrInvalidDirection    = errors.New("transaction type must be IN or OUT")
	ErrProductNotFound     = errors.New("product not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrRoleNotFound        = errors.New("role template not found")
	ErrEmailExists         = errors.New("email already exists")
	ErrSystemRole          = errors.New("system role templates cannot be deleted")
	ErrDesignationExists   = errors.New("designation already exists")
	ErrDesignationNotFound = errors.New("designation not found")
	ErrInvalidBackup       = errors.New("invalid backup file format")
	ErrEmptyImport         = errors.New("no valid rows found in import data")
)

// ShortageLine describes one outward line that asks for more than is on hand.
type ShortageLine struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}

// StockShortageError rejects an outward batch as a whole.
type StockShortageError struct {
	Lines []ShortageLine
}

func (e *StockShortageError) Error() string {
	parts := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		parts = append(parts, fmt.Sprintf("%s (requested %d, available %d)", l.ProductName, l.Requested, l.Available))
	}
	return fmt.Sprintf("%s: %s", ErrInsufficientStock, strings.Join(parts, ", "))
}

func (e *StockShortageError) Unwrap() error {
	return ErrInsufficientStock
}

// ValidationError wraps the first failed rule reported by the validator.
type ValidationError struct {
	Field string
	Tag   string
	Param string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Param)
	}
	return fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", e.Field, e.Tag)
}

func validate(data interface{}) error {
	errs := validator.ValidateStruct(data)
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	return &ValidationError{Field: first.FailedField, Tag: first.Tag, Param: first.Value}
}
