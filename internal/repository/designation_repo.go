package repository

import "slices"

type DesignationRepository interface {
	FindAll() []string
	Exists(tx *Dataset, name string) bool
	Add(tx *Dataset, name string)
	Rename(tx *Dataset, from, to string) error
	Delete(tx *Dataset, name string) error
}

type designationRepo struct {
	db *MemDB
}

func NewDesignationRepo(db *MemDB) DesignationRepository {
	return &designationRepo{db}
}

func (r *designationRepo) FindAll() []string {
	var names []string
	r.db.View(func(d *Dataset) {
		names = append([]string(nil), d.Designations...)
	})
	return names
}

func (r *designationRepo) Exists(tx *Dataset, name string) bool {
	return slices.Contains(tx.Designations, name)
}

func (r *designationRepo) Add(tx *Dataset, name string) {
	tx.Designations = append(tx.Designations, name)
}

func (r *designationRepo) Rename(tx *Dataset, from, to string) error {
	idx := slices.Index(tx.Designations, from)
	if idx < 0 {
		return ErrRecordNotFound
	}
	tx.Designations[idx] = to
	return nil
}

func (r *designationRepo) Delete(tx *Dataset, name string) error {
	idx := slices.Index(tx.Designations, name)
	if idx < 0 {
		return ErrRecordNotFound
	}
	tx.Designations = slices.Delete(tx.Designations, idx, idx+1)
	return nil
}
