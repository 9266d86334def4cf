// Package sheet converts products and audit logs to and from the delimited
// text format used for spreadsheet sync.
package sheet

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"stockflow-api/internal/model"

	"github.com/shopspring/decimal"
)

// minColumns is the fewest columns a product row may carry (id..quantity).
const minColumns = 5

var productHeader = []string{"ID", "Name", "SKU", "Category", "Quantity", "MinLevel", "Price", "ImageUrl", "LastUpdated"}

var logHeader = []string{"ID", "Timestamp", "User", "Action", "Module", "Details"}

// ParseProducts reads product rows in the column order
// id,name,sku,category,quantity,minLevel,price,imageUrl. The first line is
// treated as a header when it contains "id" in any case. Short or broken rows
// are skipped; unparsable numbers become zero.
func ParseProducts(data string, newID func() string, now time.Time) ([]model.Product, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, nil
	}

	firstLine, _, _ := strings.Cut(data, "\n")
	if strings.Contains(strings.ToLower(firstLine), "id") {
		_, rest, _ := strings.Cut(data, "\n")
		data = rest
	}

	reader := csv.NewReader(strings.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var products []model.Product
	for {
		cols, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(cols) < minColumns {
			continue
		}
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}

		id := cols[0]
		if id == "" {
			id = newID()
		}
		imageURL := column(cols, 7)
		if imageURL == "" {
			imageURL = model.DefaultImageURL
		}
		products = append(products, model.Product{
			ID:          id,
			Name:        cols[1],
			SKU:         cols[2],
			Category:    cols[3],
			Quantity:    parseCount(cols[4]),
			MinLevel:    parseCount(column(cols, 5)),
			Price:       parsePrice(column(cols, 6)),
			ImageURL:    imageURL,
			LastUpdated: now,
		})
	}
	return products, nil
}

// WriteProducts renders the product export with a header row.
func WriteProducts(w io.Writer, products []model.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(productHeader); err != nil {
		return err
	}
	for _, p := range products {
		record := []string{
			p.ID,
			p.Name,
			p.SKU,
			p.Category,
			strconv.Itoa(p.Quantity),
			strconv.Itoa(p.MinLevel),
			p.Price.String(),
			p.ImageURL,
			p.LastUpdated.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLogs renders the audit log export.
func WriteLogs(w io.Writer, logs []model.LogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(logHeader); err != nil {
		return err
	}
	for _, l := range logs {
		record := []string{l.ID, l.Timestamp.UTC().Format(time.RFC3339), l.UserName, l.Action, l.Module, l.Details}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func column(cols []string, idx int) string {
	if idx < len(cols) {
		return cols[idx]
	}
	return ""
}

// parseCount reads a non-negative integer, accepting a decimal point.
func parseCount(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return max(n, 0)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return max(int(f), 0)
	}
	return 0
}

func parsePrice(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
