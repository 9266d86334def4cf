package service

import (
	"testing"

	"stockflow-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleTemplateEditsDoNotCascade(t *testing.T) {
	f := newFixture(t, false)
	roles := NewRoleService(f.deps)
	users, _ := newUserService(f)

	role, err := roles.CreateRole(f.admin(t), &RoleRequest{
		Name:        "Counter",
		Permissions: model.Permissions{ViewDashboard: true, OutwardStock: true},
	})
	require.NoError(t, err)
	assert.False(t, role.IsSystem)

	user, err := users.CreateUser(f.admin(t), &CreateUserRequest{Name: "Till", Email: "till@stockflow.com", Role: role.ID})
	require.NoError(t, err)

	_, err = roles.UpdateRole(f.admin(t), role.ID, &RoleRequest{
		Name:        "Counter",
		Permissions: model.AdminPermissions,
	})
	require.NoError(t, err)

	stored, err := users.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.False(t, stored.HasPermission(model.CapManageSettings))
	assert.True(t, stored.HasPermission(model.CapOutwardStock))

	// editing a system template leaves seeded users alone too
	_, err = roles.UpdateRole(f.admin(t), model.RoleStaff, &RoleRequest{Name: "Staff", Permissions: model.Permissions{}})
	require.NoError(t, err)
	staff := f.staff(t)
	assert.True(t, staff.HasPermission(model.CapInwardStock))
}

func TestDeleteRole(t *testing.T) {
	f := newFixture(t, false)
	svc := NewRoleService(f.deps)

	require.ErrorIs(t, svc.DeleteRole(f.admin(t), model.RoleAdmin), ErrSystemRole)
	require.ErrorIs(t, svc.DeleteRole(f.admin(t), "ghost"), ErrRoleNotFound)

	role, err := svc.CreateRole(f.admin(t), &RoleRequest{Name: "Temp"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteRole(f.admin(t), role.ID))
	assert.Len(t, svc.GetRoles(), 3)
	assert.Equal(t, model.ActionRoleDelete, f.logs()[0].Action)

	_, err = svc.CreateRole(f.manager(t), &RoleRequest{Name: "Nope"})
	require.ErrorIs(t, err, ErrPermissionDenied)
	_, err = svc.CreateRole(f.admin(t), &RoleRequest{})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestDesignationRenameCascades(t *testing.T) {
	f := newFixture(t, false)
	svc := NewRoleService(f.deps)

	moved, err := svc.RenameDesignation(f.admin(t), "Inventory Clerk", "Stock Associate")
	require.NoError(t, err)
	assert.Equal(t, 1, moved)
	assert.Equal(t, "Stock Associate", f.staff(t).Designation)
	assert.Contains(t, svc.GetDesignations(), "Stock Associate")
	assert.NotContains(t, svc.GetDesignations(), "Inventory Clerk")
	assert.Equal(t, model.ActionDesignationUpdate, f.logs()[0].Action)

	_, err = svc.RenameDesignation(f.admin(t), "Stock Associate", "Branch Manager")
	require.ErrorIs(t, err, ErrDesignationExists)
	assert.Equal(t, "Stock Associate", f.staff(t).Designation)

	_, err = svc.RenameDesignation(f.admin(t), "Astronaut", "Pilot")
	require.ErrorIs(t, err, ErrDesignationNotFound)
}

func TestDesignationAddAndDelete(t *testing.T) {
	f := newFixture(t, false)
	svc := NewRoleService(f.deps)
	count := len(svc.GetDesignations())

	require.NoError(t, svc.AddDesignation(f.admin(t), "Auditor"))
	require.NoError(t, svc.AddDesignation(f.admin(t), "Auditor"))
	assert.Len(t, svc.GetDesignations(), count+1)
	assert.Len(t, f.logs(), 1)

	require.NoError(t, svc.DeleteDesignation(f.admin(t), "Branch Manager"))
	assert.Empty(t, f.manager(t).Designation)
	assert.NotContains(t, svc.GetDesignations(), "Branch Manager")

	require.ErrorIs(t, svc.DeleteDesignation(f.admin(t), "Branch Manager"), ErrDesignationNotFound)
	require.ErrorIs(t, svc.AddDesignation(f.staff(t), "Picker"), ErrPermissionDenied)
}
