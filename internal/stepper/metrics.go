package stepper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var pulsesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "nbtimer_stepper_pulses_total",
	Help: "The total number of step pulses emitted",
}, []string{"axis"})

var axisErrorsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "nbtimer_stepper_errors_total",
	Help: "The total number of timer or backend failures per axis",
}, []string{"axis"})

var overshootHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "nbtimer_timer_overshoot_seconds",
	Help:    "How long after its deadline a step timer was observed to expire",
	Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
}, []string{"timer"})

type overshootObserver struct{}

func (overshootObserver) Expired(name string, requested, elapsed time.Duration) {
	overshootHistogram.WithLabelValues(name).Observe((elapsed - requested).Seconds())
}
