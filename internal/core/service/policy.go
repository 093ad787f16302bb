package service

import "github.com/marketsquare/storefront-api/internal/core/domain"

// roleGrants maps each role to the set of actions it may perform. Customers
// hold no elevated capabilities; everything they can do is scoped to their
// own resources by the services themselves.
var roleGrants = map[domain.Role]map[domain.Action]bool{
	domain.RoleAdmin: {
		domain.ActionViewUsers:            true,
		domain.ActionManageCatalog:        true,
		domain.ActionViewAllOrders:        true,
		domain.ActionUpdateOrderStatus:    true,
		domain.ActionViewInactiveProducts: true,
	},
	domain.RoleCustomer: {},
}

// RolePolicy is the default access policy: a static role-to-capability table.
type RolePolicy struct{}

func NewRolePolicy() RolePolicy {
	return RolePolicy{}
}

func (RolePolicy) Allow(id domain.Identity, action domain.Action) bool {
	return roleGrants[id.Role][action]
}
