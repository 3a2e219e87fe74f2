package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "founderdash", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "founderdash", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	SessionValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "founderdash", Name: "session_validations_total", Help: "Session validations by result (ok, unauthenticated, expired, error)."},
		[]string{"result"},
	)
	RecordMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "founderdash", Name: "record_mutations_total", Help: "Successful record mutations by domain and operation."},
		[]string{"domain", "op"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(SessionValidations)
	reg.MustRegister(RecordMutations)
}

// Mutation records one successful create/update/delete.
func Mutation(domain, op string) {
	RecordMutations.WithLabelValues(domain, op).Inc()
}
