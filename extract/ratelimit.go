package extract

import (
	"context"
	"sync"

	"github.com/fwojciec/pipgrab"
	"golang.org/x/time/rate"
)

var _ pipgrab.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces image downloads per host. A product page usually
// points every image at one CDN host, so that host's bucket sets the pace
// of the whole batch.
type DomainLimiter struct {
	rps float64

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewDomainLimiter returns a limiter allowing rps downloads per second per
// host. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{rps: rps, hosts: make(map[string]*rate.Limiter)}
}

// Wait blocks until host may be contacted again or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	if d.rps <= 0 {
		return ctx.Err()
	}
	return d.limiter(host).Wait(ctx)
}

func (d *DomainLimiter) limiter(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.hosts[host]
	if !ok {
		l = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.hosts[host] = l
	}
	return l
}
