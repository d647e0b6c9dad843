package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/coursehub/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AccountService is the interface that wraps methods for registration, login and user lookup
type AccountService interface {
	// Register creates an account.
	//
	// "req" contains e-mail, password, full name, optional user index and the teacher flag.
	//
	// Returns the ID of the new user, or a validation or conflict error.
	Register(ctx context.Context, req *models.RegisterRequest) (int, error)
	// Login checks credentials given as an e-mail or a 6-digit user index.
	//
	// Returns the token pair, or an unauthenticated error for bad credentials.
	Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error)
	// Refresh issues a new token pair for a valid refresh token.
	Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	// GetUser retrieves a user profile.
	GetUser(ctx context.Context, id int) (*models.User, error)
	// SearchUsers finds users by name or e-mail.
	//
	// "excludeAdminsOfCourse" leaves out admins of that course when positive.
	SearchUsers(ctx context.Context, query string, excludeAdminsOfCourse int) ([]models.UserShort, error)
}

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	BaseHandler
	service AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(service AccountService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all account handler routes
func (h *AccountHandler) RegisterRoutes(r chi.Router, mw Middlewares) {
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/refresh", h.Refresh)

	r.Group(func(r chi.Router) {
		r.Use(mw.Auth)
		r.Get("/users/me", h.Me)
		r.Get("/users/search", h.Search)
		r.Get("/users/{id}", h.GetUser)
	})
}

// Register handles POST /auth/register
// @Summary Register a new user
// @Description Create a student account, or a teacher account when isTeacher is set
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} map[string]int "ID of the new user"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "E-mail or index already taken"
// @Router /auth/register [post]
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	id, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]int{"id": id})
}

// Login handles POST /auth/login
// @Summary Login
// @Description Authenticate with an e-mail or a 6-digit user index and a password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	tokens, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, tokens)
}

// Refresh handles POST /auth/refresh
// @Summary Refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RefreshRequest true "Refresh token"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} map[string]string "Refresh token required"
// @Failure 401 {object} map[string]string "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (h *AccountHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		h.RespondError(w, http.StatusBadRequest, "refresh token is required")
		return
	}

	tokens, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, tokens)
}

// Me handles GET /users/me
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /users/me [get]
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// GetUser handles GET /users/{id}
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [get]
func (h *AccountHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// Search handles GET /users/search
// @Summary Search users
// @Description Find users by name or e-mail, optionally leaving out admins of a course
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search text, at least 2 characters"
// @Param excludeAdminsOf query int false "Course ID whose admins are left out"
// @Success 200 {array} models.UserShort
// @Failure 400 {object} map[string]string "Query too short"
// @Router /users/search [get]
func (h *AccountHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	exclude := 0
	if raw := r.URL.Query().Get("excludeAdminsOf"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			exclude = id
		}
	}

	users, err := h.service.SearchUsers(r.Context(), query, exclude)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}
