package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/Amanisai/Emart/internal/domains/user/model"
	"github.com/Amanisai/Emart/internal/domains/user/repository"
	"github.com/Amanisai/Emart/pkg/jwt"
	"github.com/Amanisai/Emart/pkg/logger"
)

type UserService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest, expectedRole string) (*model.AuthResponse, error)
	GetByID(ctx context.Context, id int64) (*model.UserResponse, error)
	List(ctx context.Context) ([]model.UserResponse, error)
	UpdateRole(ctx context.Context, id int64, role string) (*model.UserResponse, error)
	SeedAdmin(ctx context.Context, email, password string) error
}

type userService struct {
	repo       repository.UserRepository
	jwtManager *jwt.Manager
}

func NewUserService(repo repository.UserRepository, jwtManager *jwt.Manager) UserService {
	return &userService{repo: repo, jwtManager: jwtManager}
}

func (s *userService) Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Self-registration always produces a shopper account
	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleShopper,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User registered", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	return s.issueToken(user)
}

// Login authenticates an account. When expectedRole is non-empty the
// account must carry that role, which keeps the admin login endpoint
// from accepting shopper credentials and vice versa.
func (s *userService) Login(ctx context.Context, req model.LoginRequest, expectedRole string) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if expectedRole != "" && user.Role != expectedRole {
		return nil, model.ErrRoleMismatch
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})

	return s.issueToken(user)
}

func (s *userService) GetByID(ctx context.Context, id int64) (*model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := model.ToUserResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, model.ToUserResponse(&users[i]))
	}
	return responses, nil
}

func (s *userService) UpdateRole(ctx context.Context, id int64, role string) (*model.UserResponse, error) {
	if !model.ValidRole(role) {
		return nil, model.ErrInvalidRole
	}

	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}

	logger.Info("User role updated", map[string]interface{}{
		"user_id": id,
		"role":    role,
	})

	return s.GetByID(ctx, id)
}

// SeedAdmin ensures the bootstrap admin account exists. Called once on
// startup when ADMIN_EMAIL and ADMIN_PASSWORD are configured.
func (s *userService) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &model.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		if errors.Is(err, model.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	logger.Info("Admin account seeded", map[string]interface{}{
		"email": email,
	})
	return nil
}

func (s *userService) issueToken(user *model.User) (*model.AuthResponse, error) {
	token, err := s.jwtManager.GenerateToken(strconv.FormatInt(user.ID, 10), user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.AuthResponse{
		Token: token,
		User:  model.ToUserResponse(user),
	}, nil
}
