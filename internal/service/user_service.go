package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"heritageportal/internal/model"
	"heritageportal/internal/repository"
	"heritageportal/internal/workflow"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DTOs for Request validation
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Mobile   string `json:"mobile" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

type LoginUserRequest struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// DTO for returning User without exposing sensitive data (e.g. password)
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt string    `json:"created_at"`
}

// UserService defines the interface for business logic related to User
type UserService interface {
	CreateUser(ctx context.Context, creatorID string, req CreateUserRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error)
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	ListWorkers(ctx context.Context, contractorID string) ([]UserResponse, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Helper: parse model to standard json API response
func mapToResponse(user *model.User) *UserResponse {
	resp := &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Mobile:    user.Mobile,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if user.CreatedBy != nil {
		resp.CreatedBy = user.CreatedBy.String()
	}
	return resp
}

// CreateUser registers a new user. Contractors may only register
// workers; the worker is attributed to the contractor via created_by.
// Admins and super admins may create any role except super_admin.
func (s *userService) CreateUser(ctx context.Context, creatorID string, req CreateUserRequest) (*UserResponse, error) {
	if !model.ValidRole(req.Role) {
		return nil, fmt.Errorf("invalid role %q", req.Role)
	}

	creator, err := s.repo.GetByID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("creating user not found: %w", err)
	}

	var createdBy *uuid.UUID
	switch creator.Role {
	case model.RoleSuperAdmin:
		// May create anyone
	case model.RoleAdmin:
		if req.Role == model.RoleSuperAdmin {
			return nil, workflow.ErrForbidden
		}
	case model.RoleContractor:
		if req.Role != model.RoleWorker {
			return nil, workflow.ErrForbidden
		}
		createdBy = &creator.ID
	default:
		return nil, workflow.ErrForbidden
	}

	if _, err := s.repo.GetByMobile(ctx, req.Mobile); err == nil {
		return nil, errors.New("mobile number already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		Name:      req.Name,
		Mobile:    req.Mobile,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Role:      req.Role,
		CreatedBy: createdBy,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return mapToResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByMobile(ctx, req.Mobile)
	if err != nil {
		return nil, errors.New("invalid mobile or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid mobile or password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"name": user.Name,
	})

	// Same fallback strategy as the middleware
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_super_secret_key"
	}

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &TokenResponse{Token: tokenString}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return mapToResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *mapToResponse(&users[i]))
	}

	return responses, total, nil
}

func (s *userService) ListWorkers(ctx context.Context, contractorID string) ([]UserResponse, error) {
	workers, err := s.repo.ListByCreator(ctx, contractorID)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, 0, len(workers))
	for i := range workers {
		responses = append(responses, *mapToResponse(&workers[i]))
	}
	return responses, nil
}
