package timer

import (
	"fmt"
	"time"
)

// Timer measures elapsed wall-clock time for a run.
type Timer struct {
	Started time.Time
}

func Start() *Timer {
	return &Timer{Started: time.Now()}
}

// Duration returns seconds elapsed since the timer was started.
func (t *Timer) Duration() float64 {
	return time.Since(t.Started).Seconds()
}

func (t *Timer) String() string {
	return fmt.Sprintf("%.2f", t.Duration())
}
