// models/profile.go

package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRoleType string

const (
	RoleStateOfficial     UserRoleType = "state_official"
	RoleDistrictCollector UserRoleType = "district_collector"
	RoleContractor        UserRoleType = "contractor"
)

// Profile is the authenticated actor. Role is immutable after
// provisioning; AssignedDistrict is nil for state officials and for
// contractors that have not been tied to a district yet.
type Profile struct {
	ID               uuid.UUID    `json:"id"`
	Email            string       `json:"email"`
	FullName         string       `json:"full_name"`
	PhoneNumber      *string      `json:"phone_number,omitempty"`
	Role             UserRoleType `json:"role"`
	AssignedDistrict *string      `json:"assigned_district,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) GetID() string {
	return p.ID.String()
}

// District returns the assigned district or "" when none.
func (p *Profile) District() string {
	if p.AssignedDistrict == nil {
		return ""
	}
	return *p.AssignedDistrict
}
