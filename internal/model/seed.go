package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DemoProducts returns the sample catalogue loaded when demo data is enabled.
func DemoProducts(now time.Time) []Product {
	return []Product{
		{ID: "1", Name: "Wireless Ergonomic Mouse", SKU: "TECH-001", Category: "Electronics", Quantity: 45, MinLevel: 10, Price: decimal.RequireFromString("29.99"), ImageURL: "https://picsum.photos/200/200?random=1", LastUpdated: now},
		{ID: "2", Name: "Mechanical Keyboard RGB", SKU: "TECH-002", Category: "Electronics", Quantity: 8, MinLevel: 15, Price: decimal.RequireFromString("89.99"), ImageURL: "https://picsum.photos/200/200?random=2", LastUpdated: now},
		{ID: "3", Name: "Office Chair Mesh", SKU: "FUR-001", Category: "Furniture", Quantity: 12, MinLevel: 5, Price: decimal.RequireFromString("150.00"), ImageURL: "https://picsum.photos/200/200?random=3", LastUpdated: now},
		{ID: "4", Name: "USB-C Hub Multiport", SKU: "ACC-005", Category: "Accessories", Quantity: 120, MinLevel: 30, Price: decimal.RequireFromString("45.50"), ImageURL: "https://picsum.photos/200/200?random=4", LastUpdated: now},
	}
}

// DemoTransactions returns sample movement history, newest first.
func DemoTransactions(now time.Time) []Transaction {
	return []Transaction{
		{ID: "t2", ProductID: "1", ProductName: "Wireless Ergonomic Mouse", Type: TxOut, Quantity: 5, Date: now.Add(-24 * time.Hour), Notes: "Sales order #101"},
		{ID: "t1", ProductID: "1", ProductName: "Wireless Ergonomic Mouse", Type: TxIn, Quantity: 50, Date: now.Add(-48 * time.Hour), Notes: "Initial stock"},
	}
}

// DemoLogs returns the initial audit trail.
func DemoLogs(now time.Time) []LogEntry {
	return []LogEntry{
		{ID: "l1", UserID: "u1", UserName: "Admin User", Action: ActionSystemInit, Details: "System initialized with default data", Module: ModuleSystem, Timestamp: now.Add(-72 * time.Hour)},
	}
}
