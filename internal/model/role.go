package model

// RoleTemplate is a named permission preset. Users copy its permissions at
// assignment time; later template edits do not reach them.
type RoleTemplate struct {
	ID          string      `json:"id"`
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description,omitempty"`
	Permissions Permissions `json:"permissions"`
	IsSystem    bool        `json:"is_system"`
}

// Role ids as constants
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// DefaultRoleTemplates defines the system roles
var DefaultRoleTemplates = []RoleTemplate{
	{
		ID:          RoleAdmin,
		Name:        "Admin",
		Description: "Full access to all system features including settings.",
		Permissions: AdminPermissions,
		IsSystem:    true,
	},
	{
		ID:          RoleManager,
		Name:        "Manager",
		Description: "Can manage inventory and view reports, but cannot delete products or change settings.",
		Permissions: ManagerPermissions,
		IsSystem:    true,
	},
	{
		ID:          RoleStaff,
		Name:        "Staff",
		Description: "Limited access to viewing inventory and recording stock movements.",
		Permissions: StaffPermissions,
		IsSystem:    true,
	},
}

// DefaultDesignations are the job titles available out of the box.
var DefaultDesignations = []string{
	"System Administrator",
	"Branch Manager",
	"Inventory Clerk",
	"Sales Associate",
	"Warehouse Supervisor",
	"Logistics Coordinator",
}
