package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesFor(t *testing.T) {
	assert.ElementsMatch(t, []Capability{CapRead, CapWrite, CapManageAdmins}, CapabilitiesFor(RoleAdmin))
	assert.ElementsMatch(t, []Capability{CapRead, CapWrite, CapManageAdmins}, CapabilitiesFor(RoleSuperAdmin))
	assert.Empty(t, CapabilitiesFor("Editor"))
	assert.Empty(t, CapabilitiesFor(""))
}

func TestCapabilitiesForIgnoresCase(t *testing.T) {
	assert.NotEmpty(t, CapabilitiesFor("admin"))
	assert.NotEmpty(t, CapabilitiesFor("SUPERADMIN"))
}

func TestHasCapability(t *testing.T) {
	assert.True(t, HasCapability(RoleAdmin, CapWrite))
	assert.True(t, HasCapability(RoleSuperAdmin, CapManageAdmins))
	assert.False(t, HasCapability("Viewer", CapRead))
	assert.False(t, HasCapability("", CapWrite))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole("Admin"))
	assert.True(t, ValidRole("SuperAdmin"))
	assert.True(t, ValidRole("superadmin"))
	assert.False(t, ValidRole("root"))
	assert.False(t, ValidRole(""))
}

func TestValidTestimonialStatus(t *testing.T) {
	assert.True(t, ValidTestimonialStatus(TestimonialPending))
	assert.True(t, ValidTestimonialStatus(TestimonialApproved))
	assert.True(t, ValidTestimonialStatus(TestimonialRejected))
	assert.False(t, ValidTestimonialStatus("archived"))
	assert.False(t, ValidTestimonialStatus(""))
}
