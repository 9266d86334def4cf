package model

import (
	"fmt"
	"net/url"
)

// User is a selectable actor. Permissions are its own copy, not a reference
// to the role template it was created from.
type User struct {
	ID          string      `json:"id"`
	Name        string      `json:"name" validate:"required"`
	Role        string      `json:"role"`
	Avatar      string      `json:"avatar"`
	Email       string      `json:"email" validate:"required,email"`
	Designation string      `json:"designation,omitempty"`
	Permissions Permissions `json:"permissions"`
}

// HasPermission checks if the user holds a specific capability
func (u *User) HasPermission(c Capability) bool {
	if u == nil {
		return false
	}
	return u.Permissions.Has(c)
}

// AvatarBaseURL is the generated avatar service.
const AvatarBaseURL = "https://ui-avatars.com/api/"

// AvatarURL builds the generated avatar link for a display name.
func AvatarURL(name, background string) string {
	if background == "" {
		background = "random"
	}
	return fmt.Sprintf("%s?name=%s&background=%s&color=fff", AvatarBaseURL, url.QueryEscape(name), background)
}

// DefaultUsers are always present on a fresh workspace.
var DefaultUsers = []User{
	{
		ID:          "u1",
		Name:        "Admin User",
		Role:        "Admin",
		Email:       "admin@stockflow.com",
		Designation: "System Administrator",
		Avatar:      AvatarURL("Admin User", "0D8ABC"),
		Permissions: AdminPermissions,
	},
	{
		ID:          "u2",
		Name:        "Store Manager",
		Role:        "Manager",
		Email:       "manager@stockflow.com",
		Designation: "Branch Manager",
		Avatar:      AvatarURL("Store Manager", "6366f1"),
		Permissions: ManagerPermissions,
	},
	{
		ID:          "u3",
		Name:        "Warehouse Staff",
		Role:        "Staff",
		Email:       "staff@stockflow.com",
		Designation: "Inventory Clerk",
		Avatar:      AvatarURL("Warehouse Staff", "10b981"),
		Permissions: StaffPermissions,
	},
}
