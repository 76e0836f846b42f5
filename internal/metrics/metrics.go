package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ModerationActions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "teckbook_moderation_actions_total",
	Help: "Moderation actions committed, by audit action.",
}, []string{"action"})

var ModerationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "teckbook_moderation_failures_total",
	Help: "Moderation operations rejected or aborted, by operation and error code.",
}, []string{"operation", "code"})

var AutoSuspensions = promauto.NewCounter(prometheus.CounterOpts{
	Name: "teckbook_auto_suspensions_total",
	Help: "Accounts suspended automatically after reaching the strike threshold.",
})
