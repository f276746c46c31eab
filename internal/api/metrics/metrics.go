// Package metrics defines and registers all custom Prometheus metrics for the
// recognition API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recognition"

// NominationsSubmittedTotal counts accepted nomination submissions.
var NominationsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "nominations_submitted_total",
		Help:      "Total number of nominations accepted.",
	},
)

// ReviewActionsTotal counts review decisions applied to nominations.
// Labels:
//   - action: APPROVE, REJECT or UNDO
//   - result: "ok" or "error"
var ReviewActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "review_actions_total",
		Help:      "Total number of review actions, by action and result.",
	},
	[]string{"action", "result"},
)

// VotesCastTotal counts accepted employee votes.
var VotesCastTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_cast_total",
		Help:      "Total number of votes accepted.",
	},
)

// EmailFailuresTotal counts outbound emails that could not be delivered.
var EmailFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "email_failures_total",
		Help:      "Total number of notification emails that failed delivery.",
	},
)

// ExportsGeneratedTotal counts spreadsheet exports.
// Label:
//   - kind: "star_award" or "admin_report"
var ExportsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_generated_total",
		Help:      "Total number of spreadsheet exports generated, by kind.",
	},
	[]string{"kind"},
)

// InsightRequestsTotal counts AI insight requests.
// Label:
//   - result: "ok" or "error"
var InsightRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "insight_requests_total",
		Help:      "Total number of AI insight requests, by result.",
	},
	[]string{"result"},
)
