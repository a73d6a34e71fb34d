package authz

import (
	"errors"
	"testing"

	"github.com/vthuan-dev/girl-picks-sub004/internal/domain/enums"
	"github.com/vthuan-dev/girl-picks-sub004/internal/services/auth"
)

func TestAllowedTable(t *testing.T) {
	cases := []struct {
		name       string
		role       enums.Role
		capability Capability
		want       bool
	}{
		{name: "admin moderates content", role: enums.RoleAdmin, capability: CapModerateContent, want: true},
		{name: "admin processes reports", role: enums.RoleAdmin, capability: CapProcessReports, want: true},
		{name: "admin manages users", role: enums.RoleAdmin, capability: CapManageUsers, want: true},
		{name: "staff cannot moderate", role: enums.RoleStaffUpload, capability: CapModerateContent, want: false},
		{name: "staff uploads", role: enums.RoleStaffUpload, capability: CapUploadContent, want: true},
		{name: "admin uploads", role: enums.RoleAdmin, capability: CapUploadContent, want: true},
		{name: "girl creates post", role: enums.RoleGirl, capability: CapCreatePost, want: true},
		{name: "customer cannot create post", role: enums.RoleCustomer, capability: CapCreatePost, want: false},
		{name: "admin cannot create post", role: enums.RoleAdmin, capability: CapCreatePost, want: false},
		{name: "customer writes review", role: enums.RoleCustomer, capability: CapCreateReview, want: true},
		{name: "girl writes review", role: enums.RoleGirl, capability: CapCreateReview, want: true},
		{name: "customer files report", role: enums.RoleCustomer, capability: CapFileReport, want: true},
		{name: "staff cannot file report", role: enums.RoleStaffUpload, capability: CapFileReport, want: false},
		{name: "girl cannot manage users", role: enums.RoleGirl, capability: CapManageUsers, want: false},
		{name: "unknown capability grants nothing", role: enums.RoleAdmin, capability: Capability("reboot_server"), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Allowed(tc.role, tc.capability); got != tc.want {
				t.Fatalf("Allowed(%s, %s) = %v, want %v", tc.role, tc.capability, got, tc.want)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	admin := auth.Identity{UserID: 1, SID: "sid", Role: "ADMIN"}

	if err := Authorize(admin, true, CapModerateContent); err != nil {
		t.Fatalf("expected admin to moderate, got %v", err)
	}

	if err := Authorize(auth.Identity{}, false, CapModerateContent); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for missing identity, got %v", err)
	}

	if err := Authorize(auth.Identity{UserID: 7, SID: "sid", Role: "SUPERUSER"}, true, CapModerateContent); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for unknown role, got %v", err)
	}

	customer := auth.Identity{UserID: 2, SID: "sid", Role: "customer"}
	if err := Authorize(customer, true, CapFileReport); err != nil {
		t.Fatalf("expected lowercase role to parse, got %v", err)
	}
	if err := Authorize(customer, true, CapModerateContent); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRolesReturnsCopy(t *testing.T) {
	roles := Roles(CapUploadContent)
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(roles))
	}
	roles[0] = enums.RoleCustomer
	if Allowed(enums.RoleCustomer, CapUploadContent) {
		t.Fatal("mutating the returned slice must not change grants")
	}
}
