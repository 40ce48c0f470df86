// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package sec

// # User Roles

// Role represents the authorization tier granted to an account.
type Role string

const (
	// Unrestricted system access
	RoleAdmin Role = "admin"

	// Reviews and approves/rejects crowdsourced submissions
	RoleModerator Role = "moderator"

	// Field reporter submitting prices and exchange rates for a market
	RoleCollector Role = "collector"

	// Default role: read access plus reporting bad data
	RoleUser Role = "user"
)

// ValidRole reports whether the string names a member of the closed enumeration.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleModerator, RoleCollector, RoleUser:
		return true
	}
	return false
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleModerator:
		return 30
	case RoleCollector:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// # Permission Table

// Action names a gated write operation. Read endpoints are public and never
// consult the table.
type Action string

const (
	// ActionAll is the wildcard: a role holding it may perform every action.
	ActionAll Action = "*"

	ActionPriceSubmit   Action = "price.submit"
	ActionPriceModerate Action = "price.moderate"
	ActionRateSubmit    Action = "rate.submit"
	ActionRateModerate  Action = "rate.moderate"
	ActionGeoWrite      Action = "geo.write"
	ActionGeoDelete     Action = "geo.delete"
	ActionProductWrite  Action = "product.write"
	ActionProductDelete Action = "product.delete"
	ActionReportCreate  Action = "report.create"
	ActionReportResolve Action = "report.resolve"
	ActionUserManage    Action = "user.manage"
)

// rolePermissions is the static role → allowed-actions table.
//
// The table is consulted at request time and never mutated, so concurrent
// reads are safe without locking.
var rolePermissions = map[Role][]Action{
	RoleAdmin: {ActionAll},
	RoleModerator: {
		ActionPriceSubmit, ActionPriceModerate,
		ActionRateSubmit, ActionRateModerate,
		ActionGeoWrite, ActionProductWrite,
		ActionReportCreate, ActionReportResolve,
	},
	RoleCollector: {
		ActionPriceSubmit, ActionRateSubmit, ActionReportCreate,
	},
	RoleUser: {
		ActionReportCreate,
	},
}

// Allowed reports whether the role may perform the action.
//
// The [ActionAll] wildcard grants everything; unknown roles hold nothing.
func Allowed(role Role, action Action) bool {
	for _, granted := range rolePermissions[role] {
		if granted == ActionAll || granted == action {
			return true
		}
	}
	return false
}
