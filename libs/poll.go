package libs

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// PollState is the terminal state of a convergence wait
type PollState int

const (
	// Converged means the predicate became true within the tick budget
	Converged PollState = iota
	// TimedOut means the tick budget was exhausted first
	TimedOut
)

func (s PollState) String() string {
	if s == Converged {
		return "converged"
	}
	return "timed out"
}

var errNotConverged = errors.New("condition not yet met")

// Poller repeatedly evaluates a read-only predicate at a fixed interval until
// it holds or a fixed tick budget is exhausted. The interval is constant, with
// no growth and no jitter.
type Poller struct {
	Interval time.Duration
	Budget   int           // total predicate evaluations before TimedOut
	Timer    backoff.Timer // nil uses the wall clock; tests inject a fake
}

// NewPoller builds a poller from the waits section of the config
func NewPoller(waits *WaitsConfig) *Poller {
	return &Poller{
		Interval: time.Duration(waits.PollInterval) * time.Second,
		Budget:   waits.PollBudget,
	}
}

// Wait blocks until the predicate holds or the budget runs out
func (p *Poller) Wait(predicate func() bool) PollState {
	return p.WaitNotify(predicate, nil)
}

// WaitNotify is Wait with a per-miss callback carrying the attempt number,
// used for "waiting... (n/budget)" progress lines.
func (p *Poller) WaitNotify(predicate func() bool, onMiss func(attempt int)) PollState {
	budget := p.Budget
	if budget < 1 {
		budget = 1
	}

	attempt := 0
	op := func() error {
		attempt++
		if predicate() {
			return nil
		}
		return errNotConverged
	}
	notify := func(err error, next time.Duration) {
		if onMiss != nil {
			onMiss(attempt)
		}
	}

	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(p.Interval), uint64(budget-1))
	if err := backoff.RetryNotifyWithTimer(op, b, notify, p.Timer); err != nil {
		return TimedOut
	}
	return Converged
}
