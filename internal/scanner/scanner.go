package scanner

import (
	"context"
	"fmt"
	"net/netip"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/rtls-ctl/gwscan/internal/iprange"
	"github.com/rtls-ctl/gwscan/internal/probe"
)

// DefaultConcurrency is the default number of addresses probed at once
const DefaultConcurrency = 512

// Config holds the tunables of a scan
type Config struct {
	// Concurrency is the maximum number of in-flight address pipelines
	Concurrency int

	// Port is the HTTP port probed on every address
	Port uint16

	// ConnectTimeout bounds the reachability check
	ConnectTimeout time.Duration

	// RaceTimeout is the shared deadline of the protocol probes
	RaceTimeout time.Duration
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		Concurrency:    DefaultConcurrency,
		Port:           probe.DefaultPort,
		ConnectTimeout: probe.DefaultConnectTimeout,
		RaceTimeout:    DefaultRaceTimeout,
	}
}

// Progress is reported after every address leaves the pipeline
type Progress struct {
	Done  uint64 // Addresses finished
	Total uint64 // Addresses in the range
	Found int    // Gateways detected so far
}

// Percent returns the completed fraction in [0, 1]
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 1
	}
	return float64(p.Done) / float64(p.Total)
}

// Scanner probes every address of a range for gateways
type Scanner struct {
	// Reach gates the protocol race on the host accepting connections
	Reach probe.Reachability

	// Race fingerprints reachable hosts
	Race *Race

	// Concurrency is the maximum number of in-flight address pipelines
	Concurrency int

	// OnProgress, if set, is called after each address completes.
	// Calls are serialized.
	OnProgress func(Progress)

	logger *zap.Logger
}

// New creates a scanner probing with TCP reachability and the default probers
func New(cfg Config, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = DefaultConcurrency
	}
	logger = logger.With(zap.String("component", "scanner"))

	return &Scanner{
		Reach:       probe.NewTCPReachability(cfg.Port, cfg.ConnectTimeout),
		Race:        NewRace(probe.DefaultProbers(cfg.Port), cfg.RaceTimeout, logger),
		Concurrency: cfg.Concurrency,
		logger:      logger,
	}
}

// ProbeAddr runs the full pipeline for one address: reachability first, then
// the protocol race. A reachability failure short-circuits the race.
func (s *Scanner) ProbeAddr(ctx context.Context, addr netip.Addr) (probe.Detection, error) {
	if err := s.Reach.Check(ctx, addr); err != nil {
		return probe.Detection{}, err
	}
	return s.Race.Run(ctx, addr)
}

// Scan probes every address of rng and returns the detections in completion
// order. Per-address failures are logged and skipped. If ctx is cancelled the
// detections gathered so far are returned along with the context error.
func (s *Scanner) Scan(ctx context.Context, rng iprange.Range) ([]probe.Detection, error) {
	start := time.Now()
	total := rng.Len()

	s.logger.Info("Scanning range",
		zap.Stringer("range", rng),
		zap.Uint64("addresses", total),
		zap.Int("concurrency", s.Concurrency),
	)

	var (
		mu         sync.Mutex
		wg         sync.WaitGroup
		detections []probe.Detection
		done       uint64
	)

	pool, err := ants.NewPoolWithFunc(s.Concurrency, func(arg interface{}) {
		defer wg.Done()
		addr := arg.(netip.Addr)

		det, err := s.ProbeAddr(ctx, addr)
		if err != nil {
			s.logger.Debug("Address excluded",
				zap.Stringer("ip", addr),
				zap.String("stage", probe.Stage(err)),
				zap.String("reason", probe.ShortMessage(err)),
				zap.Error(err),
			)
		}

		mu.Lock()
		defer mu.Unlock()
		if err == nil {
			detections = append(detections, det)
		}
		done++
		if s.OnProgress != nil {
			s.OnProgress(Progress{Done: done, Total: total, Found: len(detections)})
		}
	}, ants.WithPanicHandler(func(p interface{}) {
		s.logger.Error("Address pipeline panicked", zap.Any("panic", p))
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	for addr := range rng.All() {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		// Blocks while all workers are busy
		if err := pool.Invoke(addr); err != nil {
			wg.Done()
			wg.Wait()
			return detections, fmt.Errorf("failed to schedule %s: %w", addr, err)
		}
	}
	wg.Wait()

	s.logger.Info("Scan ended",
		zap.Int("gateways", len(detections)),
		zap.Duration("duration", time.Since(start)),
	)

	if err := ctx.Err(); err != nil {
		return detections, fmt.Errorf("scan interrupted: %w", err)
	}
	return detections, nil
}
