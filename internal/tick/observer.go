package tick

import "time"

// Observer is told how late each arm-cycle completed.
//
// Expired is called once per cycle, from the Wait call that first sees the
// deadline pass. elapsed-requested is the overshoot: how long past the
// deadline the loop got around to polling. Observers run on the control
// loop's goroutine and must be quick.
type Observer interface {
	Expired(name string, requested, elapsed time.Duration)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(name string, requested, elapsed time.Duration)

// Expired calls f.
func (f ObserverFunc) Expired(name string, requested, elapsed time.Duration) {
	f(name, requested, elapsed)
}

type multiObserver []Observer

func (m multiObserver) Expired(name string, requested, elapsed time.Duration) {
	for _, o := range m {
		o.Expired(name, requested, elapsed)
	}
}

// Observers combines several observers into one, skipping nils.
// It returns nil when none remain.
func Observers(obs ...Observer) Observer {
	var m multiObserver
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	}
	return m
}
