package domain

// Identity is the authenticated actor attached to a request by the auth
// middleware and threaded into every service call.
type Identity struct {
	UserID int64
	Role   Role
}

// Action names a capability checked by the access policy. Services ask the
// policy about actions instead of branching on roles.
type Action string

const (
	ActionViewUsers            Action = "users:view"
	ActionManageCatalog        Action = "catalog:manage"
	ActionViewAllOrders        Action = "orders:view_all"
	ActionUpdateOrderStatus    Action = "orders:update_status"
	ActionViewInactiveProducts Action = "catalog:view_inactive"
)
