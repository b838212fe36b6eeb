package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Amanisai/Emart/internal/domains/user/model"
	"github.com/Amanisai/Emart/pkg/jwt"
)

type fakeUserRepo struct {
	nextID  int64
	byID    map[int64]*model.User
	byEmail map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		nextID:  1,
		byID:    make(map[int64]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	email := strings.ToLower(user.Email)
	if _, exists := f.byEmail[email]; exists {
		return model.ErrEmailAlreadyExists
	}
	user.ID = f.nextID
	f.nextID++
	user.Email = email
	f.byID[user.ID] = user
	f.byEmail[email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	for _, u := range f.byID {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id int64, role string) error {
	user, ok := f.byID[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.Role = role
	return nil
}

func newTestUserService() (UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, jwt.NewManager("test-secret", time.Hour))
	return svc, repo
}

func TestSignupCreatesShopperAndIssuesToken(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService()

	resp, err := svc.Signup(context.Background(), model.SignupRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, model.RoleShopper, resp.User.Role)
	require.Equal(t, "alice@example.com", resp.User.Email)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService()
	ctx := context.Background()

	req := model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123"}
	_, err := svc.Signup(ctx, req)
	require.NoError(t, err)

	_, err = svc.Signup(ctx, req)
	require.ErrorIs(t, err, model.ErrEmailAlreadyExists)
}

func TestSignupValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, model.SignupRequest{Name: "Alice", Email: "not-an-email", Password: "secret123"})
	require.Error(t, err)

	_, err = svc.Signup(ctx, model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "short"})
	require.Error(t, err)
}

func TestLoginWithCorrectPassword(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, model.LoginRequest{Email: "alice@example.com", Password: "secret123"}, model.RoleShopper)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, model.LoginRequest{Email: "alice@example.com", Password: "wrong-pass"}, model.RoleShopper)
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginUnknownEmailLooksLikeBadCredentials(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService()

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "nobody@example.com", Password: "whatever1"}, "")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAdminLoginRejectsShopperAccount(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, model.LoginRequest{Email: "alice@example.com", Password: "secret123"}, model.RoleAdmin)
	require.ErrorIs(t, err, model.ErrRoleMismatch)
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	t.Parallel()

	svc, repo := newTestUserService()
	ctx := context.Background()

	require.NoError(t, svc.SeedAdmin(ctx, "admin@example.com", "admin-pass"))
	require.NoError(t, svc.SeedAdmin(ctx, "admin@example.com", "admin-pass"))

	admin, err := repo.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, admin.Role)
	require.Len(t, repo.byID, 1)

	// Admin login succeeds with the seeded credentials
	resp, err := svc.Login(ctx, model.LoginRequest{Email: "admin@example.com", Password: "admin-pass"}, model.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, resp.User.Role)
}

func TestUpdateRole(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService()
	ctx := context.Background()

	created, err := svc.Signup(ctx, model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	updated, err := svc.UpdateRole(ctx, created.User.ID, model.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, updated.Role)

	_, err = svc.UpdateRole(ctx, created.User.ID, "superuser")
	require.ErrorIs(t, err, model.ErrInvalidRole)

	_, err = svc.UpdateRole(ctx, 999, model.RoleShopper)
	require.ErrorIs(t, err, model.ErrUserNotFound)
}
