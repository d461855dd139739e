package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func auditDB(t *testing.T) *gorm.DB {
	t.Helper()

	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := g.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(g))

	for _, l := range []models.AuditLog{
		{BranchID: 1, Action: "appointment_created", Entity: "appointment"},
		{BranchID: 1, Action: "appointment_cancelled", Entity: "appointment"},
		{BranchID: 2, Action: "appointment_created", Entity: "appointment"},
	} {
		l := l
		require.NoError(t, g.Create(&l).Error)
	}
	return g
}

type auditPage struct {
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

func listAudit(t *testing.T, g *gorm.DB, role auth.Role, branchID *uint, query string) auditPage {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/audit-logs", asUser(role, branchID), NewAuditLogsHandler(g).List)

	w := doGet(r, "/audit-logs"+query)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var page auditPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	return page
}

func TestAuditLogs_ManagerSeesOwnBranch(t *testing.T) {
	g := auditDB(t)
	branch := uint(1)

	page := listAudit(t, g, auth.RoleManager, &branch, "")

	assert.Equal(t, int64(2), page.Total)
	for _, l := range page.Logs {
		assert.Equal(t, uint(1), l.BranchID)
	}
}

func TestAuditLogs_AdminSeesAllAndFilters(t *testing.T) {
	g := auditDB(t)

	assert.Equal(t, int64(3), listAudit(t, g, auth.RoleAdmin, nil, "").Total)

	page := listAudit(t, g, auth.RoleAdmin, nil, "?action=appointment_created&limit=1")
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Logs, 1)
}
