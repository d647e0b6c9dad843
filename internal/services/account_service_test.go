package services

import (
	"context"
	"errors"
	"testing"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashedUser(t *testing.T, id int, email, index, password string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: id, Email: email, PasswordHash: string(hash), FullName: "User", Role: role}
	if index != "" {
		user.UserIndex = &index
	}
	return user
}

func TestNewAccountService(t *testing.T) {
	userRepo := &mockUserRepository{}
	tokenGen := &mockTokenGenerator{}

	svc := NewAccountService(userRepo, tokenGen)

	assert.NotNil(t, svc)
	assert.Equal(t, userRepo, svc.userRepo)
	assert.Equal(t, tokenGen, svc.tokenGenerator)
}

func TestAccountService_Register(t *testing.T) {
	tests := []struct {
		name          string
		req           models.RegisterRequest
		userRepo      *mockUserRepository
		expectedRole  models.UserRole
		expectedError error
		errorContains string
	}{
		{
			name:         "student",
			req:          models.RegisterRequest{Email: "  Ada@Example.COM ", Password: "secret123", FullName: " Ada "},
			userRepo:     &mockUserRepository{},
			expectedRole: models.RoleStudent,
		},
		{
			name:         "teacher with index",
			req:          models.RegisterRequest{Email: "t@example.com", Password: "secret123", FullName: "T", UserIndex: "123456", IsTeacher: true},
			userRepo:     &mockUserRepository{},
			expectedRole: models.RoleTeacher,
		},
		{
			name:          "invalid email",
			req:           models.RegisterRequest{Email: "not-an-email", Password: "secret123", FullName: "A"},
			userRepo:      &mockUserRepository{},
			expectedError: apperrors.ErrValidation,
			errorContains: "invalid email format",
		},
		{
			name:          "short password",
			req:           models.RegisterRequest{Email: "a@example.com", Password: "short", FullName: "A"},
			userRepo:      &mockUserRepository{},
			expectedError: apperrors.ErrValidation,
			errorContains: "password must be at least 8 characters",
		},
		{
			name:          "empty full name",
			req:           models.RegisterRequest{Email: "a@example.com", Password: "secret123", FullName: "   "},
			userRepo:      &mockUserRepository{},
			expectedError: apperrors.ErrValidation,
			errorContains: "full name is required",
		},
		{
			name:          "bad index",
			req:           models.RegisterRequest{Email: "a@example.com", Password: "secret123", FullName: "A", UserIndex: "12ab56"},
			userRepo:      &mockUserRepository{},
			expectedError: apperrors.ErrValidation,
			errorContains: "user index must be 6 digits",
		},
		{
			name:          "duplicate",
			req:           models.RegisterRequest{Email: "a@example.com", Password: "secret123", FullName: "A"},
			userRepo:      &mockUserRepository{createErr: apperrors.Conflict("user with this email or index already exists")},
			expectedError: apperrors.ErrConflict,
			errorContains: "already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAccountService(tt.userRepo, &mockTokenGenerator{})

			id, err := svc.Register(context.Background(), &tt.req)

			if tt.errorContains != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 1, id)
			created := tt.userRepo.created
			require.NotNil(t, created)
			assert.Equal(t, tt.expectedRole, created.Role)
			assert.NotEqual(t, tt.req.Password, created.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte(tt.req.Password)))
		})
	}

	t.Run("normalizes email and name", func(t *testing.T) {
		repo := &mockUserRepository{}
		svc := NewAccountService(repo, &mockTokenGenerator{})

		_, err := svc.Register(context.Background(), &models.RegisterRequest{Email: " Ada@Example.COM", Password: "secret123", FullName: " Ada "})
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", repo.created.Email)
		assert.Equal(t, "Ada", repo.created.FullName)
		assert.Nil(t, repo.created.UserIndex)
	})
}

func TestAccountService_Login(t *testing.T) {
	student := hashedUser(t, 4, "ada@example.com", "123456", "secret123", models.RoleStudent)
	teacher := hashedUser(t, 5, "grace@example.com", "", "secret123", models.RoleTeacher)

	tests := []struct {
		name          string
		login         string
		password      string
		getErr        error
		expectedRole  int
		expectedError error
		errorContains string
	}{
		{name: "by email", login: "Grace@Example.com", password: "secret123", expectedRole: 2},
		{name: "by index", login: "123456", password: "secret123", expectedRole: 1},
		{name: "wrong password", login: "ada@example.com", password: "nope", expectedError: apperrors.ErrUnauthenticated, errorContains: "invalid credentials"},
		{name: "unknown user", login: "nobody@example.com", password: "secret123", expectedError: apperrors.ErrUnauthenticated, errorContains: "invalid credentials"},
		{name: "unknown index", login: "999999", password: "secret123", expectedError: apperrors.ErrUnauthenticated, errorContains: "invalid credentials"},
		{name: "database error", login: "ada@example.com", password: "secret123", getErr: errDatabase, expectedError: errDatabase, errorContains: "database error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepository{users: map[int]*models.User{4: student, 5: teacher}, getErr: tt.getErr}
			tokenGen := &mockTokenGenerator{}
			svc := NewAccountService(repo, tokenGen)

			resp, err := svc.Login(context.Background(), &models.LoginRequest{Login: tt.login, Password: tt.password})

			if tt.errorContains != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", resp.AccessToken)
			assert.Equal(t, "refresh-token", resp.RefreshToken)
			assert.Equal(t, tt.expectedRole, tokenGen.lastRole)
		})
	}
}

func TestAccountService_Refresh(t *testing.T) {
	user := hashedUser(t, 4, "ada@example.com", "", "secret123", models.RoleAdmin)

	t.Run("success", func(t *testing.T) {
		tokenGen := &mockTokenGenerator{refreshUserID: 4}
		svc := NewAccountService(&mockUserRepository{users: map[int]*models.User{4: user}}, tokenGen)

		resp, err := svc.Refresh(context.Background(), "token")
		require.NoError(t, err)
		assert.Equal(t, "access-token", resp.AccessToken)
		assert.Equal(t, int(models.RoleAdmin), tokenGen.lastRole)
	})

	t.Run("invalid token", func(t *testing.T) {
		svc := NewAccountService(&mockUserRepository{}, &mockTokenGenerator{refreshErr: errors.New("expired")})

		_, err := svc.Refresh(context.Background(), "token")
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("deleted user", func(t *testing.T) {
		svc := NewAccountService(&mockUserRepository{}, &mockTokenGenerator{refreshUserID: 9})

		_, err := svc.Refresh(context.Background(), "token")
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("token generation fails", func(t *testing.T) {
		svc := NewAccountService(&mockUserRepository{users: map[int]*models.User{4: user}}, &mockTokenGenerator{refreshUserID: 4, generateErr: errors.New("sign")})

		_, err := svc.Refresh(context.Background(), "token")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to generate tokens")
	})
}

func TestAccountService_SearchUsers(t *testing.T) {
	repo := &mockUserRepository{searchResult: []models.UserShort{{ID: 1, FullName: "Ada"}}}
	svc := NewAccountService(repo, &mockTokenGenerator{})

	users, err := svc.SearchUsers(context.Background(), "  ad ", 3)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "ad", repo.searchQuery)
	assert.Equal(t, maxSearchResults, repo.searchLimit)

	_, err = svc.SearchUsers(context.Background(), " a ", 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
