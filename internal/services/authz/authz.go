package authz

import (
	"errors"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	"github.com/vthuan-dev/girl-picks-sub004/internal/services/auth"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("role is not allowed to perform this action")
)

type Capability string

const (
	CapModerateContent     Capability = "moderate_content"
	CapProcessReports      Capability = "process_reports"
	CapManageUsers         Capability = "manage_users"
	CapUploadContent       Capability = "upload_content"
	CapCreatePost          Capability = "create_post"
	CapCreateReview        Capability = "create_review"
	CapCreateCommunityPost Capability = "create_community_post"
	CapFileReport          Capability = "file_report"
)

// Grants are flat: a role holds exactly the capabilities listed for it
// here, nothing is inherited. ADMIN appears where admins act, not
// everywhere.
var grants = map[Capability][]enums.Role{
	CapModerateContent:     {enums.RoleAdmin},
	CapProcessReports:      {enums.RoleAdmin},
	CapManageUsers:         {enums.RoleAdmin},
	CapUploadContent:       {enums.RoleAdmin, enums.RoleStaffUpload},
	CapCreatePost:          {enums.RoleGirl},
	CapCreateReview:        {enums.RoleCustomer, enums.RoleGirl},
	CapCreateCommunityPost: {enums.RoleCustomer, enums.RoleGirl},
	CapFileReport:          {enums.RoleCustomer, enums.RoleGirl},
}

// Allowed reports whether role holds capability. Unknown capabilities
// grant nothing.
func Allowed(role enums.Role, capability Capability) bool {
	for _, r := range grants[capability] {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize checks the identity attached by the auth middleware against
// the capability table. A missing or malformed identity is an
// authentication failure, a real role without the grant is forbidden.
func Authorize(identity auth.Identity, ok bool, capability Capability) error {
	if !ok || identity.UserID <= 0 {
		return ErrUnauthenticated
	}
	role, valid := enums.ParseRole(identity.Role)
	if !valid {
		return ErrUnauthenticated
	}
	if !Allowed(role, capability) {
		return ErrForbidden
	}
	return nil
}

// Roles returns the roles granted a capability, for introspection
// endpoints. The returned slice is a copy.
func Roles(capability Capability) []enums.Role {
	src := grants[capability]
	out := make([]enums.Role, len(src))
	copy(out, src)
	return out
}
