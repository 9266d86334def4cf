package repository

import "stockflow-api/internal/model"

type UserRepository interface {
	FindAll() []model.User
	FindByID(id string) (*model.User, error)

	Create(tx *Dataset, user model.User)
	Update(tx *Dataset, user model.User) error
	Delete(tx *Dataset, id string) (*model.User, error)
	// RenameDesignation moves every user holding from to to; returns the count
	RenameDesignation(tx *Dataset, from, to string) int
}

type userRepo struct {
	db *MemDB
}

func NewUserRepo(db *MemDB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindAll() []model.User {
	var users []model.User
	r.db.View(func(d *Dataset) {
		users = append([]model.User(nil), d.Users...)
	})
	return users
}

func (r *userRepo) FindByID(id string) (*model.User, error) {
	var (
		user model.User
		err  error
	)
	r.db.View(func(d *Dataset) {
		idx := indexOfUser(d, id)
		if idx < 0 {
			err = ErrRecordNotFound
			return
		}
		user = d.Users[idx]
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Create(tx *Dataset, user model.User) {
	tx.Users = append(tx.Users, user)
}

func (r *userRepo) Update(tx *Dataset, user model.User) error {
	idx := indexOfUser(tx, user.ID)
	if idx < 0 {
		return ErrRecordNotFound
	}
	tx.Users[idx] = user
	return nil
}

func (r *userRepo) Delete(tx *Dataset, id string) (*model.User, error) {
	idx := indexOfUser(tx, id)
	if idx < 0 {
		return nil, ErrRecordNotFound
	}
	removed := tx.Users[idx]
	tx.Users = append(tx.Users[:idx], tx.Users[idx+1:]...)
	return &removed, nil
}

func (r *userRepo) RenameDesignation(tx *Dataset, from, to string) int {
	count := 0
	for i := range tx.Users {
		if tx.Users[i].Designation == from {
			tx.Users[i].Designation = to
			count++
		}
	}
	return count
}

func indexOfUser(d *Dataset, id string) int {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return i
		}
	}
	return -1
}
