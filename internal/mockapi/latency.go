package mockapi

import (
	"context"
	"time"
)

// Latency is the artificial delay per operation standing in for the
// network round trip.
type Latency struct {
	Login         time.Duration
	Logout        time.Duration
	ValidateToken time.Duration
	List          time.Duration
	Get           time.Duration
	Create        time.Duration
	Update        time.Duration
	Delete        time.Duration
	Invoice       time.Duration
	ServiceCost   time.Duration
}

func DefaultLatency() Latency {
	return Latency{
		Login:         time.Second,
		Logout:        500 * time.Millisecond,
		ValidateToken: 500 * time.Millisecond,
		List:          time.Second,
		Get:           800 * time.Millisecond,
		Create:        time.Second,
		Update:        800 * time.Millisecond,
		Delete:        800 * time.Millisecond,
		Invoice:       time.Second,
		ServiceCost:   500 * time.Millisecond,
	}
}

// Scale multiplies every delay by f. Zero disables latency.
func (l Latency) Scale(f float64) Latency {
	s := func(d time.Duration) time.Duration { return time.Duration(float64(d) * f) }
	return Latency{
		Login:         s(l.Login),
		Logout:        s(l.Logout),
		ValidateToken: s(l.ValidateToken),
		List:          s(l.List),
		Get:           s(l.Get),
		Create:        s(l.Create),
		Update:        s(l.Update),
		Delete:        s(l.Delete),
		Invoice:       s(l.Invoice),
		ServiceCost:   s(l.ServiceCost),
	}
}

// sleep waits d. It only returns early when ctx ends, which the console
// does on shutdown.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
