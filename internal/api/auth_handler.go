package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tasktrack/tasktrack-api/internal/api/shared"
	"github.com/tasktrack/tasktrack-api/internal/config"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/platform/logger"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// AuthHandler handles registration, login, logout, and the current-user
// endpoint. Successful registration and login both issue a session token,
// delivered in the response body and as a cookie.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	cookies          sessionCookieWriter
	logger           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	serverCfg config.ServerConfig,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		cookies: sessionCookieWriter{
			lifetime: jwtService.TokenLifetime(),
			secure:   serverCfg.IsProduction(),
		},
		logger: slog.Default().With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /auth/register. It creates a new user account and
// starts a session for it in the same request.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, ValidationFieldErrors(err))
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// The store hashes the password and enforces email uniqueness.
	if err := h.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration attempt with existing email",
				slog.String("email", user.Email))
		}
		HandleAPIError(w, r, err, "")
		return
	}

	token, err := h.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create session", err)
		return
	}

	h.cookies.set(w, token)

	log.Info("user registered",
		slog.Int64("user_id", user.ID))

	shared.RespondWithData(w, r, http.StatusCreated, AuthResponse{
		User:  userToResponse(user),
		Token: token,
	})
}

// Login handles POST /auth/login. Unknown emails and wrong passwords produce
// the same response, so the endpoint never confirms whether an email is
// registered.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, ValidationFieldErrors(err))
		return
	}

	user, err := h.userStore.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
				"Invalid credentials", err, shared.WithElevatedLogLevel())
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to log in", err)
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
			"Invalid credentials", err, shared.WithElevatedLogLevel())
		return
	}

	token, err := h.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create session", err)
		return
	}

	h.cookies.set(w, token)

	log.Info("user logged in",
		slog.Int64("user_id", user.ID))

	shared.RespondWithData(w, r, http.StatusOK, AuthResponse{
		User:  userToResponse(user),
		Token: token,
	})
}

// Logout handles POST /auth/logout. It clears the session cookie; the JWT
// itself stays valid until expiry, so clients holding the raw token must
// discard it.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	h.cookies.clear(w)

	if user, ok := getUserFromContext(r); ok {
		log.Info("user logged out",
			slog.Int64("user_id", user.ID))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.Envelope{
		Success: true,
		Message: "Logged out",
	})
}

// Me handles GET /auth/me. It returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := getUserFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token supplied")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, userToResponse(user))
}
