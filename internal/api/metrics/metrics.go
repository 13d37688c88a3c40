// Package metrics defines and registers all custom Prometheus metrics for the
// care platform API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics built with promauto register themselves with the default registry
// at package init; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "careplatform"

// SignupsTotal counts completed signups.
// Label:
//   - role: the role granted at signup ("patient" or "founder")
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of completed signups, by granted role.",
	},
	[]string{"role"},
)

// RoleAssignmentsTotal counts explicit role changes that reached both the
// provider claim and the local mirror.
// Label:
//   - role: the newly assigned role
var RoleAssignmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_assignments_total",
		Help:      "Total number of successful role assignments, by new role.",
	},
	[]string{"role"},
)

// InvitationsCreatedTotal counts issued invitations.
// Label:
//   - role: the role the invitation grants
var InvitationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invitations_created_total",
		Help:      "Total number of invitations issued, by granted role.",
	},
	[]string{"role"},
)

// InvitationsAcceptedTotal counts invitation redemption attempts.
// Label:
//   - outcome: "accepted", "expired", "forbidden", "not_found", or "error"
var InvitationsAcceptedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invitations_accepted_total",
		Help:      "Total number of invitation redemption attempts, by outcome.",
	},
	[]string{"outcome"},
)

// CaseNumbersMintedTotal counts minted case numbers across all departments.
var CaseNumbersMintedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "case_numbers_minted_total",
		Help:      "Total number of case numbers minted.",
	},
)

// RateLimitRejectionsTotal counts requests rejected by the rate limiter.
// Label:
//   - scope: the limiter scope the request hit (e.g. "auth")
var RateLimitRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Total number of requests rejected by the rate limiter, by scope.",
	},
	[]string{"scope"},
)
