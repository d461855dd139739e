package auth

import "fmt"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStylist  Role = "stylist"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleCustomer, RoleStylist, RoleManager, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("auth: unknown role %q", s)
}

type Capability string

const (
	CapBookAppointment    Capability = "book_appointment"
	CapViewSchedule       Capability = "view_schedule"
	CapManageAppointments Capability = "manage_appointments"
	CapRequestLeave       Capability = "request_leave"
	CapManageLeave        Capability = "manage_leave"
	CapManageBranch       Capability = "manage_branch"
	CapManageHolidays     Capability = "manage_holidays"
	CapViewAuditLogs      Capability = "view_audit_logs"
	CapCrossBranch        Capability = "cross_branch"
)

// Can is the single authorization table of the API.
func (r Role) Can(c Capability) bool {
	switch r {
	case RoleAdmin:
		return true

	case RoleManager:
		switch c {
		case CapBookAppointment,
			CapViewSchedule,
			CapManageAppointments,
			CapRequestLeave,
			CapManageLeave,
			CapManageBranch,
			CapViewAuditLogs:
			return true
		}
		return false

	case RoleStylist:
		switch c {
		case CapBookAppointment,
			CapViewSchedule,
			CapManageAppointments,
			CapRequestLeave:
			return true
		}
		return false

	case RoleCustomer:
		return c == CapBookAppointment
	}

	return false
}
