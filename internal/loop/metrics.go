package loop

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var iterationsCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "nbtimer_loop_iterations_total",
	Help: "The total number of control loop iterations",
})

var commandsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "nbtimer_loop_commands_total",
	Help: "The total number of step commands by outcome",
}, []string{"outcome"})

var backlogGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "nbtimer_loop_backlog_steps",
	Help: "Steps received but not yet accepted by a full axis plan",
})
