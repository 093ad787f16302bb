package ports

import "github.com/marketsquare/storefront-api/internal/core/domain"

// Policy decides whether an identity may perform an action. Services consult
// the policy at their boundary instead of branching on roles inline, keeping
// the authorization decision in one place.
type Policy interface {
	Allow(id domain.Identity, action domain.Action) bool
}
