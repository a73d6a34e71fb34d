package enums

import "strings"

// Role is a closed set. Permission checks are explicit set membership,
// never rank comparison, so adding a role cannot silently widen access.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleStaffUpload Role = "STAFF_UPLOAD"
	RoleGirl        Role = "GIRL"
	RoleCustomer    Role = "CUSTOMER"
)

func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleStaffUpload:
		return RoleStaffUpload, true
	case RoleGirl:
		return RoleGirl, true
	case RoleCustomer:
		return RoleCustomer, true
	default:
		return "", false
	}
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}
