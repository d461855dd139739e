package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
)

type MeHandler struct {
	users UserStore
	log   *zap.Logger
}

func NewMeHandler(users UserStore, log *zap.Logger) *MeHandler {
	return &MeHandler{users: users, log: log}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	p := currentPrincipal(c)
	if p.UserID == 0 {
		httperr.Unauthorized(c, "user_not_in_context", "Authentication required.")
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), p.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		writeError(c, h.log, err)
		return
	}

	resp := gin.H{
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"phone":     user.Phone,
			"role":      user.Role,
			"branch_id": user.BranchID,
		},
	}
	if user.Branch != nil {
		resp["branch"] = gin.H{
			"id":       user.Branch.ID,
			"name":     user.Branch.Name,
			"slug":     user.Branch.Slug,
			"timezone": user.Branch.Timezone,
		}
	}

	c.JSON(http.StatusOK, resp)
}
