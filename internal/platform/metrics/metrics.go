package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the process metrics for the field-sales core.
type Registry struct {
	reg *prometheus.Registry

	OrdersCreated   prometheus.Counter
	OrdersCompleted prometheus.Counter
	LoginOutcomes   *prometheus.CounterVec
	PodUploadSec    prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	created := prometheus.NewCounter(prometheus.CounterOpts{Name: "preventa_orders_created_total"})
	completed := prometheus.NewCounter(prometheus.CounterOpts{Name: "preventa_orders_completed_total"})
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "preventa_login_outcomes_total"}, []string{"kind"})
	podUpload := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "preventa_pod_upload_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(created, completed, logins, podUpload)
	return &Registry{
		reg:             r,
		OrdersCreated:   created,
		OrdersCompleted: completed,
		LoginOutcomes:   logins,
		PodUploadSec:    podUpload,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
