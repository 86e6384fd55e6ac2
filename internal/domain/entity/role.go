package entity

// Role is an acting profile's role within an organization.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleMechanic Role = "mechanic"
	RolePilot    Role = "pilot"
	RoleAdmin    Role = "admin"
	RoleViewer   Role = "viewer"
)

// Permission tags checked before mutating operations.
type Permission string

const (
	PermTransitionFlight  Permission = "flight:transition"
	PermEditFlight        Permission = "flight:edit"
	PermCreateFlight      Permission = "flight:create"
	PermCreateSignoff     Permission = "signoff:create"
	PermCreatePermit      Permission = "permit:create"
	PermManageDocuments   Permission = "document:manage"
	PermManageDiscrepancy Permission = "discrepancy:manage"
)

// rolePermissions is the static role-to-permission table. It is never
// mutated at runtime.
var rolePermissions = map[Role]map[Permission]bool{
	RoleOwner: {
		PermTransitionFlight:  true,
		PermEditFlight:        true,
		PermCreateFlight:      true,
		PermCreatePermit:      true,
		PermManageDocuments:   true,
		PermManageDiscrepancy: true,
	},
	RoleMechanic: {
		PermEditFlight:        true,
		PermCreateSignoff:     true,
		PermManageDocuments:   true,
		PermManageDiscrepancy: true,
	},
	RolePilot: {
		PermTransitionFlight: true,
		PermEditFlight:       true,
		PermManageDocuments:  true,
	},
	RoleAdmin: {
		PermTransitionFlight:  true,
		PermEditFlight:        true,
		PermCreateFlight:      true,
		PermCreateSignoff:     true,
		PermCreatePermit:      true,
		PermManageDocuments:   true,
		PermManageDiscrepancy: true,
	},
	RoleViewer: {},
}

// Actor is the explicit acting identity passed to every mutating operation.
type Actor struct {
	UserID string
	Role   Role
}

// HasPermission reports whether the actor's role grants the permission.
func (a Actor) HasPermission(p Permission) bool {
	return rolePermissions[a.Role][p]
}

// Authorize returns an AuthorizationError when the actor lacks the
// permission, nil otherwise.
func (a Actor) Authorize(p Permission) error {
	if !a.HasPermission(p) {
		return &AuthorizationError{Role: a.Role, Permission: p}
	}
	return nil
}
