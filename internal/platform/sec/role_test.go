// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/narkhlab/narkh/internal/platform/sec"
)

/*
TestRole_AtLeast verifies the admin > moderator > collector > user ordering.
*/
func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		name   string
		role   sec.Role
		target sec.Role
		want   bool
	}{
		{"admin_meets_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"admin_exceeds_user", sec.RoleAdmin, sec.RoleUser, true},
		{"moderator_below_admin", sec.RoleModerator, sec.RoleAdmin, false},
		{"moderator_exceeds_collector", sec.RoleModerator, sec.RoleCollector, true},
		{"collector_below_moderator", sec.RoleCollector, sec.RoleModerator, false},
		{"user_meets_user", sec.RoleUser, sec.RoleUser, true},
		{"unknown_below_user", sec.Role("ghost"), sec.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}
}

/*
TestValidRole accepts only the closed role enumeration.
*/
func TestValidRole(t *testing.T) {
	for _, valid := range []string{"admin", "moderator", "collector", "user"} {
		assert.True(t, sec.ValidRole(valid), valid)
	}
	for _, invalid := range []string{"", "Admin", "root", "superuser"} {
		assert.False(t, sec.ValidRole(invalid), invalid)
	}
}

/*
TestAllowed exercises the permission table including the admin wildcard.
*/
func TestAllowed(t *testing.T) {
	tests := []struct {
		name   string
		role   sec.Role
		action sec.Action
		want   bool
	}{
		{"admin_wildcard_user_manage", sec.RoleAdmin, sec.ActionUserManage, true},
		{"admin_wildcard_geo_delete", sec.RoleAdmin, sec.ActionGeoDelete, true},
		{"moderator_moderates_prices", sec.RoleModerator, sec.ActionPriceModerate, true},
		{"moderator_moderates_rates", sec.RoleModerator, sec.ActionRateModerate, true},
		{"moderator_writes_geo", sec.RoleModerator, sec.ActionGeoWrite, true},
		{"moderator_cannot_delete_geo", sec.RoleModerator, sec.ActionGeoDelete, false},
		{"moderator_cannot_manage_users", sec.RoleModerator, sec.ActionUserManage, false},
		{"collector_submits_prices", sec.RoleCollector, sec.ActionPriceSubmit, true},
		{"collector_submits_rates", sec.RoleCollector, sec.ActionRateSubmit, true},
		{"collector_cannot_moderate", sec.RoleCollector, sec.ActionPriceModerate, false},
		{"collector_cannot_write_geo", sec.RoleCollector, sec.ActionGeoWrite, false},
		{"user_creates_reports", sec.RoleUser, sec.ActionReportCreate, true},
		{"user_cannot_submit_prices", sec.RoleUser, sec.ActionPriceSubmit, false},
		{"user_cannot_resolve_reports", sec.RoleUser, sec.ActionReportResolve, false},
		{"unknown_role_holds_nothing", sec.Role("ghost"), sec.ActionReportCreate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.Allowed(tt.role, tt.action))
		})
	}
}

/*
TestPrincipal_Can routes through the permission table.
*/
func TestPrincipal_Can(t *testing.T) {
	principal := &sec.Principal{ID: "u1", Role: sec.RoleCollector}

	assert.True(t, principal.Can(sec.ActionPriceSubmit))
	assert.False(t, principal.Can(sec.ActionPriceModerate))
}

/*
TestPrincipal_Region returns empty strings for unassigned fields.
*/
func TestPrincipal_Region(t *testing.T) {
	provinceID := "p1"
	marketID := "m1"

	unassigned := &sec.Principal{}
	province, market := unassigned.Region()
	assert.Empty(t, province)
	assert.Empty(t, market)

	assigned := &sec.Principal{ProvinceID: &provinceID, MarketID: &marketID}
	province, market = assigned.Region()
	assert.Equal(t, "p1", province)
	assert.Equal(t, "m1", market)
}
