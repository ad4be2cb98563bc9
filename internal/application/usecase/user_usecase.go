package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Multitenant-api/internal/application/dto"
	"github.com/jhoicas/Multitenant-api/internal/domain"
	"github.com/jhoicas/Multitenant-api/internal/domain/entity"
	"github.com/jhoicas/Multitenant-api/internal/domain/repository"
	"github.com/jhoicas/Multitenant-api/internal/domain/tenancy"
)

// UserUseCase aplica reglas de negocio para usuarios del tenant activo.
type UserUseCase struct {
	repo repository.UserRepository
	cost int
}

// NewUserUseCase construye el caso de uso. bcryptCost <= 0 usa bcrypt.DefaultCost.
func NewUserUseCase(repo repository.UserRepository, bcryptCost int) *UserUseCase {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserUseCase{repo: repo, cost: bcryptCost}
}

// Create crea un usuario en el tenant del alcance con el password hasheado.
func (uc *UserUseCase) Create(ctx context.Context, scope tenancy.Scope, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := checkBodyTenant(scope, in.TenantID); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email y password son obligatorios", domain.ErrMissingField)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("%w: hash de password: %w", domain.ErrInternal, err)
	}
	user := &entity.User{Username: username, Email: email, PasswordHash: string(hash)}
	if err := uc.repo.Create(ctx, scope, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// GetByID obtiene un usuario del alcance. ErrNotFound si no existe o es de otro tenant.
func (uc *UserUseCase) GetByID(ctx context.Context, scope tenancy.Scope, id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Update actualiza username, email y/o password.
func (uc *UserUseCase) Update(ctx context.Context, scope tenancy.Scope, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := checkBodyTenant(scope, in.TenantID); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, fmt.Errorf("%w: username vacío", domain.ErrInvalidInput)
		}
		user.Username = username
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
		}
		user.Email = email
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, fmt.Errorf("%w: password vacío", domain.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), uc.cost)
		if err != nil {
			return nil, fmt.Errorf("%w: hash de password: %w", domain.ErrInternal, err)
		}
		user.PasswordHash = string(hash)
	}
	if err := uc.repo.Update(ctx, scope, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// List lista usuarios del alcance con paginación.
func (uc *UserUseCase) List(ctx context.Context, scope tenancy.Scope, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, scope, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *entityToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un usuario del alcance por ID.
func (uc *UserUseCase) Delete(ctx context.Context, scope tenancy.Scope, id int64) error {
	return uc.repo.Delete(ctx, scope, id)
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
