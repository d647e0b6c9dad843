package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines methods for user data access
type UserRepository interface {
	// Create inserts a new user
	//
	// "ctx" is the context for the request.
	// "user" is the user to create; its ID is set on success.
	//
	// Returns a Conflict error when the e-mail or index is taken.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the user.
	//
	// Returns the user and an error if any.
	GetByID(ctx context.Context, id int) (*models.User, error)
	// GetByEmail retrieves a user by e-mail
	//
	// "ctx" is the context for the request.
	// "email" is the normalized e-mail.
	//
	// Returns the user and an error if any.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByUserIndex retrieves a user by the 6-digit index
	//
	// "ctx" is the context for the request.
	// "index" is the user index.
	//
	// Returns the user and an error if any.
	GetByUserIndex(ctx context.Context, index string) (*models.User, error)
	// Search finds users by name or e-mail
	//
	// "ctx" is the context for the request.
	// "query" is matched against full name and e-mail.
	// "excludeAdminsOfCourse" leaves out admins of that course when positive.
	// "limit" caps the number of results.
	//
	// Returns matching users and an error if any.
	Search(ctx context.Context, query string, excludeAdminsOfCourse int, limit int) ([]models.UserShort, error)
	// CountByIDs counts how many of the IDs belong to existing users
	CountByIDs(ctx context.Context, ids []int) (int, error)
}

// TokenGenerator issues and validates JWT tokens
type TokenGenerator interface {
	GenerateTokens(userID int, role int) (string, string, error)
	ValidateRefreshToken(tokenString string) (int, error)
}

const maxSearchResults = 20

var (
	emailRegex     = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	userIndexRegex = regexp.MustCompile(`^[0-9]{6}$`)
)

type accountService struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
}

// NewAccountService creates a new account service
func NewAccountService(userRepo UserRepository, tokenGenerator TokenGenerator) *accountService {
	return &accountService{
		userRepo:       userRepo,
		tokenGenerator: tokenGenerator,
	}
}

// Register creates a student account, or a teacher account when requested.
// Returns the ID of the new user.
func (s *accountService) Register(ctx context.Context, req *models.RegisterRequest) (int, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)
	index := strings.TrimSpace(req.UserIndex)

	if !emailRegex.MatchString(email) {
		return 0, apperrors.Validation("invalid email format")
	}
	if len(req.Password) < 8 {
		return 0, apperrors.Validation("password must be at least 8 characters long")
	}
	if fullName == "" {
		return 0, apperrors.Validation("full name is required")
	}
	if index != "" && !userIndexRegex.MatchString(index) {
		return 0, apperrors.Validation("user index must be 6 digits")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Role:         models.RoleStudent,
	}
	if index != "" {
		user.UserIndex = &index
	}
	if req.IsTeacher {
		user.Role = models.RoleTeacher
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Login checks credentials given as an e-mail or a 6-digit user index and issues tokens
func (s *accountService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	login := strings.TrimSpace(req.Login)

	var user *models.User
	var err error
	if userIndexRegex.MatchString(login) {
		user, err = s.userRepo.GetByUserIndex(ctx, login)
	} else {
		user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(login))
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.Unauthenticated("invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthenticated("invalid credentials")
	}

	return s.issueTokens(user)
}

// Refresh issues a new token pair for a valid refresh token
func (s *accountService) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	userID, err := s.tokenGenerator.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthenticated("invalid or expired refresh token")
	}

	// the role may have changed since the refresh token was issued
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.Unauthenticated("invalid or expired refresh token")
	}
	if err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *accountService) issueTokens(user *models.User) (*models.TokenResponse, error) {
	access, refresh, err := s.tokenGenerator.GenerateTokens(user.ID, int(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return &models.TokenResponse{AccessToken: access, RefreshToken: refresh}, nil
}

// GetUser retrieves a user profile
func (s *accountService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// SearchUsers finds users for participant and admin pickers
func (s *accountService) SearchUsers(ctx context.Context, query string, excludeAdminsOfCourse int) ([]models.UserShort, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return nil, apperrors.Validation("search query must be at least 2 characters long")
	}
	return s.userRepo.Search(ctx, query, excludeAdminsOfCourse, maxSearchResults)
}
