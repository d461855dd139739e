package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("manager")
	require.NoError(t, err)
	assert.Equal(t, RoleManager, r)

	_, err = ParseRole("owner")
	assert.Error(t, err)
}

func TestCan(t *testing.T) {
	assert.True(t, RoleCustomer.Can(CapBookAppointment))
	assert.False(t, RoleCustomer.Can(CapViewSchedule))

	assert.True(t, RoleStylist.Can(CapRequestLeave))
	assert.False(t, RoleStylist.Can(CapManageLeave))

	assert.True(t, RoleManager.Can(CapManageBranch))
	assert.False(t, RoleManager.Can(CapManageHolidays))
	assert.False(t, RoleManager.Can(CapCrossBranch))

	assert.True(t, RoleAdmin.Can(CapManageHolidays))
	assert.True(t, RoleAdmin.Can(CapCrossBranch))

	assert.False(t, Role("ghost").Can(CapBookAppointment))
}

func TestIssuer_RoundTrip(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	branch := uint(4)

	signed, issued, err := iss.Issue(12, RoleStylist, &branch)
	require.NoError(t, err)
	require.NotEmpty(t, issued.ID)

	claims, err := iss.Parse(signed)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)
	assert.Equal(t, RoleStylist, claims.Role)
	require.NotNil(t, claims.BranchID)
	assert.Equal(t, uint(4), *claims.BranchID)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestIssuer_RejectsExpiredAndForeign(t *testing.T) {
	iss := NewIssuer("secret", time.Minute)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, _, err := iss.Issue(1, RoleCustomer, nil)
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Minute).Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	fresh, _, err := NewIssuer("other", time.Minute).Issue(1, RoleCustomer, nil)
	require.NoError(t, err)
	_, err = NewIssuer("secret", time.Minute).Parse(fresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsUnknownRole(t *testing.T) {
	claims := &Claims{
		Role: "owner",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "x",
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Hour).Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
