package service

import (
	"errors"

	"github.com/google/uuid"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/stock"
)

var ErrCannotDeleteSelf = errors.New("you cannot delete your own account")

type UserService interface {
	CreateUser(req *CreateUserRequest, actor stock.Actor) (*model.User, error)
	UpdateUser(userID uuid.UUID, req *UpdateUserRequest, actor stock.Actor) (*model.User, error)
	DeleteUser(userID uuid.UUID, actor stock.Actor) error
	UpdateUserPrivileges(userID uuid.UUID, privilegeCodes []string, actor stock.Actor) (*model.User, error)
	GetAllUsers(roleCode string) ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"max=20"`
	RoleID      uint   `json:"role_id" validate:"required"`
}

type UpdateUserRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=6"`
	FullName    string  `json:"full_name" validate:"required"`
	PhoneNumber string  `json:"phone_number" validate:"max=20"`
	RoleID      uint    `json:"role_id" validate:"required"`
	IsActive    *bool   `json:"is_active"`
}

type userService struct {
	userRepo      repository.UserRepository
	privilegeRepo repository.PrivilegeRepository
	roleRepo      repository.RoleRepository
}

func NewUserService(userRepo repository.UserRepository, privilegeRepo repository.PrivilegeRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{
		userRepo:      userRepo,
		privilegeRepo: privilegeRepo,
		roleRepo:      roleRepo,
	}
}

func (s *userService) CreateUser(req *CreateUserRequest, actor stock.Actor) (*model.User, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	email := model.NormalizeEmail(req.Email)
	if existing, _ := s.userRepo.FindByEmail(email); existing != nil {
		return nil, ErrEmailExists
	}

	role, err := s.roleRepo.FindByID(req.RoleID)
	if err != nil {
		return nil, lookup(err, ErrRoleNotFound)
	}

	user := &model.User{
		Email:       email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		RoleID:      &role.ID,
		IsActive:    true,
		Privileges:  role.Privileges, // privileges start as the role's defaults
	}
	user.CreatedBy = actor.Ref()
	user.UpdatedBy = actor.Ref()

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	user.Role = role
	return user, nil
}

func (s *userService) UpdateUser(userID uuid.UUID, req *UpdateUserRequest, actor stock.Actor) (*model.User, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, lookup(err, ErrUserNotFound)
	}

	email := model.NormalizeEmail(req.Email)
	if email != user.Email {
		if existing, _ := s.userRepo.FindByEmail(email); existing != nil {
			return nil, ErrEmailExists
		}
	}

	role, err := s.roleRepo.FindByID(req.RoleID)
	if err != nil {
		return nil, lookup(err, ErrRoleNotFound)
	}
	roleChanged := user.RoleID == nil || *user.RoleID != role.ID

	user.Email = email
	user.FullName = req.FullName
	user.PhoneNumber = req.PhoneNumber
	user.RoleID = &role.ID
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
		if !user.IsActive {
			user.TokenVersion = ""
		}
	}
	user.UpdatedBy = actor.Ref()

	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	// A role change resets privilege overrides to the new role's defaults.
	if roleChanged {
		if err := s.userRepo.UpdatePrivileges(user.ID, role.Privileges); err != nil {
			return nil, err
		}
	}

	return s.userRepo.FindByID(userID)
}

func (s *userService) DeleteUser(userID uuid.UUID, actor stock.Actor) error {
	if userID == actor.ID {
		return ErrCannotDeleteSelf
	}
	return lookup(s.userRepo.Delete(userID, actor.Ref()), ErrUserNotFound)
}

func (s *userService) UpdateUserPrivileges(userID uuid.UUID, privilegeCodes []string, actor stock.Actor) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, lookup(err, ErrUserNotFound)
	}

	privileges, err := s.privilegeRepo.FindByCodes(privilegeCodes)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdatePrivileges(userID, privileges); err != nil {
		return nil, err
	}

	user.UpdatedBy = actor.Ref()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return s.userRepo.FindByID(userID)
}

func (s *userService) GetAllUsers(roleCode string) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll(roleCode)
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, lookup(err, ErrUserNotFound)
	}
	response := user.ToResponse()
	return &response, nil
}
