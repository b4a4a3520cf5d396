package caixa

import (
	"time"

	"github.com/pkg/math"
)

// RetryPolicy bounds how a failed provider call is repeated. Sleep is
// injectable so tests run without real delays.
type RetryPolicy struct {
	MaxRetries  int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
	Sleep       func(time.Duration)
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:  2,
		BaseBackoff: time.Second,
		MaxBackoff:  3 * time.Second,
		Sleep:       time.Sleep,
	}
}

// BackoffFor returns the capped exponential delay before retry number
// attempt (1-based).
func (p RetryPolicy) BackoffFor(attempt int) time.Duration {
	backoff := int64(p.BaseBackoff) << (attempt - 1)
	return time.Duration(math.MinInt64(backoff, int64(p.MaxBackoff)))
}

func (p RetryPolicy) wait(attempt int) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	sleep(p.BackoffFor(attempt))
}
