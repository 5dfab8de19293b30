package updates

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "githerd",
	Name:      "update_cycles_total",
	Help:      "Update cycles by outcome.",
}, []string{"outcome"})
