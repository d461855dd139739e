package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

type principal struct {
	UserID   uint
	Role     auth.Role
	BranchID *uint
}

func currentPrincipal(c *gin.Context) principal {
	p := principal{
		UserID: c.GetUint(middleware.ContextUserID),
	}
	if role, ok := c.Get(middleware.ContextUserRole); ok {
		p.Role, _ = role.(auth.Role)
	}
	if id, ok := c.Get(middleware.ContextBranchID); ok {
		if v, ok := id.(uint); ok {
			p.BranchID = &v
		}
	}
	return p
}

// branchScope returns the branch a staff member is confined to, or 0 for
// cross-branch roles. ok is false for staff without a branch.
func (p principal) branchScope() (uint, bool) {
	if p.Role.Can(auth.CapCrossBranch) {
		return 0, true
	}
	if p.BranchID == nil {
		return 0, false
	}
	return *p.BranchID, true
}

// requireScope writes 403 when the principal has no usable branch scope.
func requireScope(c *gin.Context) (principal, uint, bool) {
	p := currentPrincipal(c)
	scope, ok := p.branchScope()
	if !ok {
		httperr.Forbidden(c, "no_branch", "User is not assigned to a branch.")
		return p, 0, false
	}
	return p, scope, true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+".")
		return 0, false
	}
	return uint(v), true
}

func uintQuery(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_parameter", name+" must be a positive integer.")
		return 0, false
	}
	return uint(v), true
}
