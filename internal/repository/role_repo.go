package repository

import (
	"slices"

	"stockflow-api/internal/model"
)

type RoleRepository interface {
	FindAll() []model.RoleTemplate
	FindByID(id string) (*model.RoleTemplate, error)
	FindByName(name string) (*model.RoleTemplate, error)

	Create(tx *Dataset, role model.RoleTemplate)
	Update(tx *Dataset, role model.RoleTemplate) error
	Delete(tx *Dataset, id string) (*model.RoleTemplate, error)
}

type roleRepo struct {
	db *MemDB
}

func NewRoleRepo(db *MemDB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) FindAll() []model.RoleTemplate {
	var roles []model.RoleTemplate
	r.db.View(func(d *Dataset) {
		roles = append([]model.RoleTemplate(nil), d.RoleTemplates...)
	})
	return roles
}

func (r *roleRepo) FindByID(id string) (*model.RoleTemplate, error) {
	return r.find(func(role model.RoleTemplate) bool { return role.ID == id })
}

func (r *roleRepo) FindByName(name string) (*model.RoleTemplate, error) {
	return r.find(func(role model.RoleTemplate) bool { return role.Name == name })
}

func (r *roleRepo) find(match func(model.RoleTemplate) bool) (*model.RoleTemplate, error) {
	var found *model.RoleTemplate
	r.db.View(func(d *Dataset) {
		for _, role := range d.RoleTemplates {
			if match(role) {
				role := role
				found = &role
				return
			}
		}
	})
	if found == nil {
		return nil, ErrRecordNotFound
	}
	return found, nil
}

func (r *roleRepo) Create(tx *Dataset, role model.RoleTemplate) {
	tx.RoleTemplates = append(tx.RoleTemplates, role)
}

func (r *roleRepo) Update(tx *Dataset, role model.RoleTemplate) error {
	idx := indexOfRole(tx, role.ID)
	if idx < 0 {
		return ErrRecordNotFound
	}
	tx.RoleTemplates[idx] = role
	return nil
}

func (r *roleRepo) Delete(tx *Dataset, id string) (*model.RoleTemplate, error) {
	idx := indexOfRole(tx, id)
	if idx < 0 {
		return nil, ErrRecordNotFound
	}
	removed := tx.RoleTemplates[idx]
	tx.RoleTemplates = append(tx.RoleTemplates[:idx], tx.RoleTemplates[idx+1:]...)
	return &removed, nil
}

func indexOfRole(d *Dataset, id string) int {
	return slices.IndexFunc(d.RoleTemplates, func(role model.RoleTemplate) bool { return role.ID == id })
}
