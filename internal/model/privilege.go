package model

// Capability is one named permission flag gating a category of operation.
type Capability string

const (
	CapViewDashboard  Capability = "view_dashboard"
	CapViewInventory  Capability = "view_inventory"
	CapAddProduct     Capability = "add_product"
	CapEditProduct    Capability = "edit_product"
	CapDeleteProduct  Capability = "delete_product"
	CapInwardStock    Capability = "inward_stock"
	CapOutwardStock   Capability = "outward_stock"
	CapViewReports    Capability = "view_reports" // Includes AI assistant and history
	CapImportExport   Capability = "import_export"
	CapManageSettings Capability = "manage_settings"
)

// CapDeleteTransaction gates removal of stock movement records.
// Transaction deletion reuses the product deletion permission.
const CapDeleteTransaction = CapDeleteProduct

// AllCapabilities lists every capability in display order.
var AllCapabilities = []Capability{
	CapViewDashboard,
	CapViewInventory,
	CapAddProduct,
	CapEditProduct,
	CapDeleteProduct,
	CapInwardStock,
	CapOutwardStock,
	CapViewReports,
	CapImportExport,
	CapManageSettings,
}

// Permissions is a fixed set of ten boolean capability flags.
// It is a plain value: assigning it copies it.
type Permissions struct {
	ViewDashboard  bool `json:"view_dashboard"`
	ViewInventory  bool `json:"view_inventory"`
	AddProduct     bool `json:"add_product"`
	EditProduct    bool `json:"edit_product"`
	DeleteProduct  bool `json:"delete_product"`
	InwardStock    bool `json:"inward_stock"`
	OutwardStock   bool `json:"outward_stock"`
	ViewReports    bool `json:"view_reports"`
	ImportExport   bool `json:"import_export"`
	ManageSettings bool `json:"manage_settings"`
}

// Has reports whether the capability flag is set. Unknown capabilities are denied.
func (p Permissions) Has(c Capability) bool {
	switch c {
	case CapViewDashboard:
		return p.ViewDashboard
	case CapViewInventory:
		return p.ViewInventory
	case CapAddProduct:
		return p.AddProduct
	case CapEditProduct:
		return p.EditProduct
	case CapDeleteProduct:
		return p.DeleteProduct
	case CapInwardStock:
		return p.InwardStock
	case CapOutwardStock:
		return p.OutwardStock
	case CapViewReports:
		return p.ViewReports
	case CapImportExport:
		return p.ImportExport
	case CapManageSettings:
		return p.ManageSettings
	}
	return false
}

// Codes returns the granted capabilities, used for session claims.
func (p Permissions) Codes() []string {
	codes := make([]string, 0, len(AllCapabilities))
	for _, c := range AllCapabilities {
		if p.Has(c) {
			codes = append(codes, string(c))
		}
	}
	return codes
}

// Default permission presets for the system roles
var (
	AdminPermissions = Permissions{
		ViewDashboard:  true,
		ViewInventory:  true,
		AddProduct:     true,
		EditProduct:    true,
		DeleteProduct:  true,
		InwardStock:    true,
		OutwardStock:   true,
		ViewReports:    true,
		ImportExport:   true,
		ManageSettings: true,
	}
	ManagerPermissions = Permissions{
		ViewDashboard: true,
		ViewInventory: true,
		AddProduct:    true,
		EditProduct:   true,
		InwardStock:   true,
		OutwardStock:  true,
		ViewReports:   true,
		ImportExport:  true,
	}
	StaffPermissions = Permissions{
		ViewDashboard: true,
		ViewInventory: true,
		InwardStock:   true,
		OutwardStock:  true,
	}
)
