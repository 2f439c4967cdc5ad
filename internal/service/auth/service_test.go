package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/auth/models"
)

// Фейки зависимостей

type fakeUserRepo struct {
	byEmail map[string]*domain.User

	lastLoginUpdated []int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return nil, userRepo.ErrEmailTaken
	}
	user.ID = int64(len(f.byEmail) + 1)
	f.byEmail[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id int64) error {
	f.lastLoginUpdated = append(f.lastLoginUpdated, id)
	return nil
}

type fakeEventRepo struct {
	events []*domain.EventLog
}

func (f *fakeEventRepo) Append(_ context.Context, event *domain.EventLog) error {
	f.events = append(f.events, event)
	return nil
}

type fakeTokenService struct{}

func (fakeTokenService) Generate(userID int64, role string) (string, error) {
	return "token", nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Хелперы

func newTestService() (*Service, *fakeUserRepo, *fakeEventRepo) {
	users := newFakeUserRepo()
	events := &fakeEventRepo{}
	return NewService(users, events, fakeTokenService{}, noopLogger{}), users, events
}

func registerRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Email:    "musician@example.com",
		Password: "correct-horse",
		Name:     "Test Musician",
		Role:     string(domain.RoleCustomer),
	}
}

// Тесты

func TestRegister_CreatesUserAndIssuesToken(t *testing.T) {
	svc, users, events := newTestService()

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.Equal(t, "token", resp.Token)
	assert.Equal(t, "musician@example.com", resp.User.Email)
	assert.Equal(t, string(domain.RoleCustomer), resp.User.Role)
	assert.True(t, resp.User.IsActive)

	// Пароль хранится только как bcrypt хеш
	stored := users.byEmail["musician@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))

	require.Len(t, events.events, 1)
	assert.Equal(t, domain.EventUserRegistered, events.events[0].EventType)
}

func TestRegister_NormalizesEmail(t *testing.T) {
	svc, users, _ := newTestService()

	req := registerRequest()
	req.Email = "  Musician@Example.COM "

	resp, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "musician@example.com", resp.User.Email)
	assert.Contains(t, users.byEmail, "musician@example.com")
}

func TestRegister_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *models.RegisterRequest)
	}{
		{"empty email", func(r *models.RegisterRequest) { r.Email = "" }},
		{"email without at", func(r *models.RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *models.RegisterRequest) { r.Password = "short" }},
		{"empty name", func(r *models.RegisterRequest) { r.Name = "  " }},
		{"admin role not allowed", func(r *models.RegisterRequest) { r.Role = string(domain.RoleAdmin) }},
		{"unknown role", func(r *models.RegisterRequest) { r.Role = "superuser" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService()
			req := registerRequest()
			tt.mutate(req)

			_, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	svc, users, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "musician@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "token", resp.Token)
	assert.Equal(t, "musician@example.com", resp.User.Email)
	assert.Len(t, users.lastLoginUpdated, 1)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &models.LoginRequest{
		Email:    "musician@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, users, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	users.byEmail["musician@example.com"].IsActive = false

	_, err = svc.Login(context.Background(), &models.LoginRequest{
		Email:    "musician@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrUserInactive)
}
