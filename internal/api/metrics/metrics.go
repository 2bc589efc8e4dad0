// Package metrics defines all custom Prometheus metrics for the classroom
// access API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "classroom"

// LoginsTotal counts teacher login attempts.
// Label:
//   - result: "success", "invalid_credentials", "role_not_found", "invalid_role"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of teacher login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts teacher signup attempts.
// Label:
//   - result: "success", "invite_code_invalid", "email_exists"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of teacher signup attempts, by result.",
	},
	[]string{"result"},
)

// JoinsTotal counts student join attempts.
// Label:
//   - result: "success", "classroom_not_found", "seat_taken"
var JoinsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "joins_total",
		Help:      "Total number of student join attempts, by result.",
	},
	[]string{"result"},
)

// BootstrapFailuresTotal counts bootstrap step failures. Failures never
// block the surrounding authentication; this counter is how they stay
// visible.
// Label:
//   - step: "db_upsert_teacher", "db_select_classroom", "db_insert_classroom"
var BootstrapFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bootstrap_failures_total",
		Help:      "Total number of teacher/classroom bootstrap step failures, by step.",
	},
	[]string{"step"},
)

// CodeGenerationExhaustedTotal counts unique-code generation runs that
// burned the whole attempt budget without finding a free code.
var CodeGenerationExhaustedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "code_generation_exhausted_total",
		Help:      "Total number of classroom code generations that exhausted their attempt budget.",
	},
)
