// Package metrics defines the custom Prometheus metrics of the storefront
// API. It is the single source of truth for metric names, labels, and help
// strings; registration happens implicitly via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// OrdersCreatedTotal counts successfully placed orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders placed successfully.",
	},
)

// AuthRejectionsTotal counts requests rejected by the auth middleware.
// Label:
//   - reason: "missing", "revoked", "expired", "invalid", "unknown_user"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the auth middleware, by reason.",
	},
	[]string{"reason"},
)

// CartMutationsTotal counts successful cart mutations.
// Label:
//   - op: "add", "update", "remove", "clear"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of successful cart mutations, by operation.",
	},
	[]string{"op"},
)
