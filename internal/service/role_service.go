package service

import (
	"errors"
	"fmt"
	"strings"

	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"
)

type RoleService interface {
	GetRoles() []model.RoleTemplate
	GetRoleByID(id string) (*model.RoleTemplate, error)
	CreateRole(actor *model.User, req *RoleRequest) (*model.RoleTemplate, error)
	UpdateRole(actor *model.User, id string, req *RoleRequest) (*model.RoleTemplate, error)
	DeleteRole(actor *model.User, id string) error

	GetDesignations() []string
	AddDesignation(actor *model.User, name string) error
	RenameDesignation(actor *model.User, from, to string) (int, error)
	DeleteDesignation(actor *model.User, name string) error
}

type RoleRequest struct {
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description"`
	Permissions model.Permissions `json:"permissions"`
}

type roleService struct {
	base
}

func NewRoleService(deps Dependencies) RoleService {
	return &roleService{newBase(deps)}
}

func (s *roleService) GetRoles() []model.RoleTemplate {
	return s.Roles.FindAll()
}

func (s *roleService) GetRoleByID(id string) (*model.RoleTemplate, error) {
	role, err := s.Roles.FindByID(id)
	if err != nil {
		return nil, ErrRoleNotFound
	}
	return role, nil
}

func (s *roleService) CreateRole(actor *model.User, req *RoleRequest) (*model.RoleTemplate, error) {
	if err := s.authorize(actor, model.CapManageSettings); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	role := model.RoleTemplate{
		ID:          s.NewID(),
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	}
	var entry model.LogEntry
	if err := s.DB.Transaction(func(tx *repository.Dataset) error {
		s.Roles.Create(tx, role)
		entry = s.audit(tx, actor, model.ActionRoleCreate, fmt.Sprintf("Created role template %s", role.Name), model.ModuleSettings)
		return nil
	}); err != nil {
		return nil, err
	}

	s.committed(entry)
	return &role, nil
}

// UpdateRole edits the template only. Users created from it keep the
// permissions they were given.
func (s *roleService) UpdateRole(actor *model.User, id string, req *RoleRequest) (*model.RoleTemplate, error) {
	if err := s.authorize(actor, model.CapManageSettings); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	var (
		role  model.RoleTemplate
		entry model.LogEntry
	)
	err := s.DB.Transaction(func(tx *repository.Dataset) error {
		existing, err := findRoleTemplate(tx, id)
		if err != nil || existing.ID != id {
			return ErrRoleNotFound
		}
		role = *existing
		role.Name = req.Name
		role.Description = req.Description
		role.Permissions = req.Permissions
		if err := s.Roles.Update(tx, role); err != nil {
			return err
		}
		entry = s.audit(tx, actor, model.ActionRoleUpdate, fmt.Sprintf("Updated role template %s", role.Name), model.ModuleSettings)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.committed(entry)
	return &role, nil
}

func (s *roleService) DeleteRole(actor *model.User, id string) error {
	if err := s.authorize(actor, model.CapManageSettings); err != nil {
		return err
	}

	var entry model.LogEntry
	err := s.DB.Transaction(func(tx *repository.Dataset) error {
		existing, err := findRoleTemplate(tx, id)
		if err != nil || existing.ID != id {
			return ErrRoleNotFound
		}
		if existing.IsSystem {
			return ErrSystemRole
		}
		if _, err := s.Roles.Delete(tx, id); err != nil {
			return err
		}
		entry = s.audit(tx, actor, model.ActionRoleDelete, fmt.Sprintf("Deleted role template %s", existing.Name), model.ModuleSettings)
		return nil
	})
	if err != nil {
		return err
	}

	s.committed(entry)
	return nil
}

func (s *roleService) GetDesignations() []string {
	return s.Designations.FindAll()
}

// AddDesignation ignores names that already exist.
func (s *roleService) AddDesignation(actor *model.User, name string) error {
	if err := s.authorize(actor, model.CapManageSettings); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "name", Tag: "required"}
	}

	var (
		added bool
		entry model.LogEntry
	)
	err := s.DB.Transaction(func(tx *repository.Dataset) error {
		if s.Designations.Exists(tx, name) {
			return nil
		}
		s.Designations.Add(tx, name)
		added = true
		entry = s.audit(tx, actor, model.ActionDesignationAdd, fmt.Sprintf("Added designation %s", name), model.ModuleSettings)
		return nil
	})
	if err != nil || !added {
		return err
	}

	s.committed(entry)
	return nil
}

// RenameDesignation renames the title and moves every user holding it.
// Returns how many users were moved.
func (s *roleService) RenameDesignation(actor *model.User, from, to string) (int, error) {
	if err := s.authorize(actor, model.CapManageSettings); err != nil {
		return 0, err
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return 0, &ValidationError{Field: "name", Tag: "required"}
	}
	if from == to {
		return 0, nil
	}

	var (
		moved int
		entry model.LogEntry
	)
	err := s.DB.Transaction(func(tx *repository.Dataset) error {
		if s.Designations.Exists(tx, to) {
			return ErrDesignationExists
		}
		if err := s.Designations.Rename(tx, from, to); err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return ErrDesignationNotFound
			}
			return err
		}
		moved = s.Users.RenameDesignation(tx, from, to)
		entry = s.audit(tx, actor, model.ActionDesignationUpdate, fmt.Sprintf("Renamed designation %s to %s", from, to), model.ModuleSettings)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.committed(entry)
	return moved, nil
}

// DeleteDesignation removes the title and clears it from users holding it.
func (s *roleService) DeleteDesignation(actor *model.User, name string) error {
	if err := s.authorize(actor, model.CapManageSettings); err != nil {
		return err
	}

	var entry model.LogEntry
	err := s.DB.Transaction(func(tx *repository.Dataset) error {
		if err := s.Designations.Delete(tx, name); err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return ErrDesignationNotFound
			}
			return err
		}
		s.Users.RenameDesignation(tx, name, "")
		entry = s.audit(tx, actor, model.ActionDesignationDelete, fmt.Sprintf("Deleted designation %s", name), model.ModuleSettings)
		return nil
	})
	if err != nil {
		return err
	}

	s.committed(entry)
	return nil
}
