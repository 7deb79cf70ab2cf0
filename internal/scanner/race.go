package scanner

import (
	"context"
	"errors"
	"net/netip"
	"time"

	"go.uber.org/zap"

	"github.com/rtls-ctl/gwscan/internal/probe"
)

// DefaultRaceTimeout is the shared deadline for all probers of one address
const DefaultRaceTimeout = 3 * time.Second

// Race runs several probers against one address and keeps the first success
type Race struct {
	// Probers are started together; at most one of them should match a host
	Probers []probe.Prober

	// Timeout is the deadline shared by all probers
	Timeout time.Duration

	logger *zap.Logger
}

// NewRace creates a race over probers with the given deadline
func NewRace(probers []probe.Prober, timeout time.Duration, logger *zap.Logger) *Race {
	if timeout <= 0 {
		timeout = DefaultRaceTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Race{
		Probers: probers,
		Timeout: timeout,
		logger:  logger,
	}
}

// Run returns the first successful detection, a timeout error once the
// deadline passes, or a canceled error if ctx is cancelled first. Probers still running when Run returns are cancelled.
func (r *Race) Run(ctx context.Context, addr netip.Addr) (probe.Detection, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	// Buffered so late winners never block after Run has returned
	won := make(chan probe.Detection, len(r.Probers))

	for _, p := range r.Probers {
		go func() {
			det, err := p.Probe(ctx, addr)
			if err != nil {
				// A failed prober stays silent; the race waits for the others
				if ctx.Err() == nil {
					r.logger.Debug("Probe failed",
						zap.Stringer("ip", addr),
						zap.Stringer("gateway", p.Gateway()),
						zap.String("reason", probe.ShortMessage(err)),
						zap.Error(err),
					)
				}
				return
			}
			won <- det
		}()
	}

	select {
	case det := <-won:
		r.logger.Debug("Gateway detected",
			zap.Stringer("ip", addr),
			zap.Stringer("gateway", det.Gateway),
			zap.Stringer("mac", det.MAC),
		)
		return det, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.Canceled) {
			return probe.Detection{}, probe.NewCanceledError(addr, ctx.Err())
		}
		return probe.Detection{}, probe.NewTimeoutError(addr, ctx.Err())
	}
}
