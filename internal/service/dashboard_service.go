package service

import (
	"sort"
	"time"

	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	recentTransactionsLimit = 5
	topProductsLimit        = 7
	chartNameLimit          = 15
)

type DashboardStats struct {
	TotalProducts      int                 `json:"total_products"`
	TotalItems         int                 `json:"total_items"`
	LowStockCount      int                 `json:"low_stock_count"`
	TotalValue         decimal.Decimal     `json:"total_value"`
	LowStockItems      []model.Product     `json:"low_stock_items"`
	RecentTransactions []model.Transaction `json:"recent_transactions"`
	TopProducts        []ChartPoint        `json:"top_products"`
}

// ChartPoint is one bar of the stock level chart.
type ChartPoint struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Min      int    `json:"min"`
}

// StockReport is the filtered product listing with its totals.
type StockReport struct {
	Products      []model.Product `json:"products"`
	TotalItems    int             `json:"total_items"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStockCount int             `json:"low_stock_count"`
	Categories    []string        `json:"categories"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

type DashboardService interface {
	GetStockMovement(days int) []repository.StockMovementData
	GetDashboardStats() *DashboardStats
	GetStockReport(filter ProductFilter) *StockReport
}

type dashboardService struct {
	base
}

func NewDashboardService(deps Dependencies) DashboardService {
	return &dashboardService{newBase(deps)}
}

func (s *dashboardService) GetStockMovement(days int) []repository.StockMovementData {
	if days <= 0 {
		days = 7
	}
	endDate := s.Clock()
	startDate := endDate.AddDate(0, 0, -days)
	return s.Transactions.GetStockMovement(startDate, endDate)
}

func (s *dashboardService) GetDashboardStats() *DashboardStats {
	products := s.Products.FindAll()
	transactions := s.Transactions.FindAll()

	stats := &DashboardStats{
		TotalProducts: len(products),
		TotalValue:    decimal.Zero,
		LowStockItems: []model.Product{},
	}
	// Hitung total stok dan nilai
	for _, p := range products {
		stats.TotalItems += p.Quantity
		stats.TotalValue = stats.TotalValue.Add(p.Value())
		if p.IsLowStock() {
			stats.LowStockItems = append(stats.LowStockItems, p)
		}
	}
	stats.LowStockCount = len(stats.LowStockItems)

	stats.RecentTransactions = nonNil(transactions[:min(recentTransactionsLimit, len(transactions))])

	ranked := append([]model.Product(nil), products...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Quantity > ranked[j].Quantity })
	stats.TopProducts = make([]ChartPoint, 0, topProductsLimit)
	for _, p := range ranked[:min(topProductsLimit, len(ranked))] {
		stats.TopProducts = append(stats.TopProducts, ChartPoint{
			Name:     chartName(p.Name),
			Quantity: p.Quantity,
			Min:      p.MinLevel,
		})
	}
	return stats
}

func (s *dashboardService) GetStockReport(filter ProductFilter) *StockReport {
	report := &StockReport{
		Products:    []model.Product{},
		TotalValue:  decimal.Zero,
		GeneratedAt: s.Clock(),
	}
	seen := map[string]bool{}
	for _, p := range s.Products.FindAll() {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			report.Categories = append(report.Categories, p.Category)
		}
		if !filter.Match(p) {
			continue
		}
		report.Products = append(report.Products, p)
		report.TotalItems += p.Quantity
		report.TotalValue = report.TotalValue.Add(p.Value())
		if p.IsLowStock() {
			report.LowStockCount++
		}
	}
	return report
}

func chartName(name string) string {
	runes := []rune(name)
	if len(runes) > chartNameLimit {
		return string(runes[:chartNameLimit]) + "..."
	}
	return name
}
