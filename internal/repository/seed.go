package repository

import (
	"time"

	"stockflow-api/internal/model"
)

// SeedDataset builds the initial workspace. Users, role templates and
// designations are always present; products, transactions and the init log
// entry only when demo data is requested.
func SeedDataset(withDemoData bool, now time.Time) *Dataset {
	d := &Dataset{
		Users:         append([]model.User(nil), model.DefaultUsers...),
		RoleTemplates: append([]model.RoleTemplate(nil), model.DefaultRoleTemplates...),
		Designations:  append([]string(nil), model.DefaultDesignations...),
	}
	if withDemoData {
		d.Products = model.DemoProducts(now)
		d.Transactions = model.DemoTransactions(now)
		d.Logs = model.DemoLogs(now)
	}
	return d
}
