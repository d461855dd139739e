package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	EmailTaken(ctx context.Context, email string) (bool, error)
}

type AuthHandler struct {
	users   UserStore
	issuer  *auth.Issuer
	revoked auth.RevocationStore
	lookup  validators.DomainLookup
	log     *zap.Logger
}

func NewAuthHandler(
	users UserStore,
	issuer *auth.Issuer,
	revoked auth.RevocationStore,
	lookup validators.DomainLookup,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		users:   users,
		issuer:  issuer,
		revoked: revoked,
		lookup:  lookup,
		log:     log,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register creates customer accounts only; staff accounts are provisioned by admins.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !validators.IsEmailDomainValid(email, h.lookup) {
		httperr.BadRequest(c, "invalid_email_domain", "The e-mail domain does not look valid.")
		return
	}

	taken, err := h.users.EmailTaken(c.Request.Context(), email)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if taken {
		httperr.Conflict(c, "email_already_exists", "E-mail already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process password.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         string(auth.RoleCustomer),
	}
	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		writeError(c, h.log, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, &user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), validators.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid e-mail or password.")
			return
		}
		writeError(c, h.log, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid e-mail or password.")
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

// Logout revokes the presented token until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	v, ok := c.Get(middleware.ContextClaims)
	claims, _ := v.(*auth.Claims)
	if !ok || claims == nil {
		httperr.Unauthorized(c, "unauthenticated", "Authentication required.")
		return
	}

	if err := h.revoked.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		h.log.Error("auth: revoke failed", zap.Error(err))
		httperr.Write(c, http.StatusServiceUnavailable, "logout_failed", "Could not revoke token.")
		return
	}

	httpresp.NoContent(c)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	role, err := auth.ParseRole(user.Role)
	if err != nil {
		h.log.Error("auth: user has unknown role", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
		httperr.Internal(c, "invalid_role", "User role is misconfigured.")
		return
	}

	token, _, err := h.issuer.Issue(user.ID, role, user.BranchID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	c.JSON(status, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"phone":     user.Phone,
			"role":      user.Role,
			"branch_id": user.BranchID,
		},
		"token": token,
	})
}
