package enum

// ── Order state machine (forward-only) ──

const (
	OrderStatusPending   = "PENDING"
	OrderStatusReady     = "READY"
	OrderStatusDelivered = "DELIVERED"
)

// ── Roles ──

const (
	RoleStaff   = "STAFF"
	RoleCook    = "COOK"
	RoleManager = "MANAGER"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleStaff, RoleCook, RoleManager:
		return true
	}
	return false
}
