package service

import (
	"errors"
	"fmt"
	"strings"

	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"
	"stockflow-api/pkg/jwt"
)

type UserService interface {
	SwitchUser(actor *model.User, userID string) (*Session, error)
	CreateUser(actor *model.User, req *CreateUserRequest) (*model.User, error)
	UpdateUser(actor *model.User, id string, req *UpdateUserRequest) (*model.User, error)
	DeleteUser(actor *model.User, id string) error
	GetAllUsers() []model.User
	GetUserByID(id string) (*model.User, error)
}

// CreateUserRequest names a role template whose permissions are copied onto
// the user. Explicit permissions win over the template.
type CreateUserRequest struct {
	Name        string             `json:"name" validate:"required"`
	Email       string             `json:"email" validate:"required,email"`
	Role        string             `json:"role" validate:"required"`
	Designation string             `json:"designation"`
	Avatar      string             `json:"avatar"`
	Permissions *model.Permissions `json:"permissions,omitempty"`
}

type UpdateUserRequest struct {
	Name        string             `json:"name" validate:"required"`
	Email       string             `json:"email" validate:"required,email"`
	Role        string             `json:"role"`
	Designation *string            `json:"designation,omitempty"`
	Avatar      *string            `json:"avatar,omitempty"`
	Permissions *model.Permissions `json:"permissions,omitempty"`
}

// Session is returned when the active user changes.
type Session struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
	View  model.View `json:"view"`
	Codes []string   `json:"privileges"`
}

type userService struct {
	base
	signer *jwt.Signer
}

func NewUserService(deps Dependencies, signer *jwt.Signer) UserService {
	return &userService{base: newBase(deps), signer: signer}
}

// SwitchUser makes userID the active user. The switch is logged under the
// previous user; with no previous user the target signs the entry.
func (s *userService) SwitchUser(actor *model.User, userID string) (*Session, error) {
	var (
		target model.User
		entry  model.LogEntry
	)
	err := s.DB.Transaction(func(tx *repository.Dataset) error {
		found, err := findUser(tx, userID)
		if err != nil {
			return err
		}
		target = *found
		by := actor
		if by == nil {
			by = &target
		}
		entry = s.audit(tx, by, model.ActionUserSwitch, fmt.Sprintf("Switched user to %s", target.Name), model.ModuleAuth)
		return nil
	})
	if err != nil {
		return nil, err
	}

	codes := target.Permissions.Codes()
	token, err := s.signer.GenerateToken(target.ID, target.Name, target.Role, codes)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}

	s.committed(entry)
	return &Session{Token: token, User: target, View: model.ViewDashboard, Codes: codes}, nil
}

func (s *userService) CreateUser(actor *model.User, req *CreateUserRequest) (*model.User, error) {
	if err := s.authorize(actor, model.CapManageSettings); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	var (
		user  model.User
		entry model.LogEntry
	)
	err := s.DB.Transaction(func(tx *repository.Dataset) error {
		if emailTaken(tx, req.Email, "") {
			return ErrEmailExists
		}
		user = model.User{
			ID:          s.NewID(),
			Name:        req.Name,
			Email:       req.Email,
			Designation: req.Designation,
			Avatar:      req.Avatar,
		}
		if user.Avatar == "" {
			user.Avatar = model.AvatarURL(user.Name, "")
		}
		role, err := findRoleTemplate(tx, req.Role)
		switch {
		case err == nil:
			user.Role = role.Name
			user.Permissions = role.Permissions
		case req.Permissions != nil:
			user.Role = req.Role
		default:
			return err
		}
		if req.Permissions != nil {
			user.Permissions = *req.Permissions
		}

		s.Users.Create(tx, user)
		entry = s.audit(tx, actor, model.ActionUserCreate, fmt.Sprintf("Created user %s", user.Name), model.ModuleSettings)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.committed(entry)
	return &user, nil
}

// UpdateUser rewrites profile fields. Changing the role re-copies the
// template's permissions unless explicit permissions are given.
func (s *userService) UpdateUser(actor *model.User, id string, req *UpdateUserRequest) (*model.User, error) {
	if err := s.authorize(actor, model.CapManageSettings); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	var (
		user  model.User
		entry model.LogEntry
	)
	err := s.DB.Transaction(func(tx *repository.Dataset) error {
		existing, err := findUser(tx, id)
		if err != nil {
			return err
		}
		if emailTaken(tx, req.Email, id) {
			return ErrEmailExists
		}
		user = *existing
		// generated avatars follow the name, uploaded ones are kept
		if user.Name != req.Name && (user.Avatar == "" || strings.HasPrefix(user.Avatar, model.AvatarBaseURL)) {
			user.Avatar = model.AvatarURL(req.Name, "")
		}
		user.Name = req.Name
		user.Email = req.Email
		if req.Designation != nil {
			user.Designation = *req.Designation
		}
		if req.Avatar != nil && *req.Avatar != "" {
			user.Avatar = *req.Avatar
		}
		if req.Role != "" && req.Role != user.Role {
			role, err := findRoleTemplate(tx, req.Role)
			if err != nil && req.Permissions == nil {
				return err
			}
			if err == nil {
				user.Role = role.Name
				user.Permissions = role.Permissions
			} else {
				user.Role = req.Role
			}
		}
		if req.Permissions != nil {
			user.Permissions = *req.Permissions
		}

		if err := s.Users.Update(tx, user); err != nil {
			return err
		}
		entry = s.audit(tx, actor, model.ActionUserUpdate, fmt.Sprintf("Updated user %s", user.Name), model.ModuleSettings)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.committed(entry)
	return &user, nil
}

func (s *userService) DeleteUser(actor *model.User, id string) error {
	if err := s.authorize(actor, model.CapManageSettings); err != nil {
		return err
	}

	var entry model.LogEntry
	err := s.DB.Transaction(func(tx *repository.Dataset) error {
		removed, err := s.Users.Delete(tx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		entry = s.audit(tx, actor, model.ActionUserDelete, fmt.Sprintf("Deleted user %s", removed.Name), model.ModuleSettings)
		return nil
	})
	if err != nil {
		return err
	}

	s.committed(entry)
	return nil
}

func (s *userService) GetAllUsers() []model.User {
	return s.Users.FindAll()
}

func (s *userService) GetUserByID(id string) (*model.User, error) {
	user, err := s.Users.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func findUser(tx *repository.Dataset, id string) (*model.User, error) {
	for i := range tx.Users {
		if tx.Users[i].ID == id {
			user := tx.Users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func emailTaken(tx *repository.Dataset, email, exceptID string) bool {
	for _, u := range tx.Users {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// findRoleTemplate accepts a template id or its display name.
func findRoleTemplate(tx *repository.Dataset, ref string) (*model.RoleTemplate, error) {
	for i := range tx.RoleTemplates {
		r := tx.RoleTemplates[i]
		if r.ID == ref || strings.EqualFold(r.Name, ref) {
			return &r, nil
		}
	}
	return nil, ErrRoleNotFound
}
