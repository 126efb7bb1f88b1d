// Package executor drives one full measurement run: warmup, overhead
// calibration, the measured iteration loop, and result assembly.
package executor

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"benchkit/internal/alloc"
	"benchkit/internal/core"
	"benchkit/internal/procstats"
	"benchkit/internal/stats"
)

// DefaultSamplingInterval is the target interval for the peak-thread
// sampler. The actual sleep is jittered ±10% around it.
const DefaultSamplingInterval = 5 * time.Millisecond

// Executor runs benchmarks. The zero executor is not usable; construct
// with New.
type Executor struct {
	clock            core.Clock
	proc             procstats.Producer
	lifecycle        *alloc.LifecycleTracker
	log              *logrus.Logger
	samplingInterval time.Duration
}

// Option configures an Executor.
type Option func(*Executor)

// WithClock replaces the time source, for deterministic loop tests.
func WithClock(c core.Clock) Option {
	return func(e *Executor) { e.clock = c }
}

// WithProcessProducer replaces the OS process-statistics producer.
func WithProcessProducer(p procstats.Producer) Option {
	return func(e *Executor) { e.proc = p }
}

// WithLifecycleTracker replaces the object-lifecycle tracker.
func WithLifecycleTracker(t *alloc.LifecycleTracker) Option {
	return func(e *Executor) { e.lifecycle = t }
}

// WithLogger replaces the logger. The default logger only emits
// warnings.
func WithLogger(l *logrus.Logger) Option {
	return func(e *Executor) { e.log = l }
}

// WithSamplingInterval overrides the peak-thread sampling interval.
func WithSamplingInterval(d time.Duration) Option {
	return func(e *Executor) { e.samplingInterval = d }
}

func New(opts ...Option) *Executor {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	e := &Executor{
		clock:            core.RealClock{},
		lifecycle:        alloc.DefaultTracker,
		log:              log,
		samplingInterval: DefaultSamplingInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// overhead is the fixed per-call cost of taking a process snapshot,
// measured by two back-to-back snapshots with no workload between them.
// Only syscall counts and logical read bytes have observable baseline
// cost.
type overhead struct {
	syscallsRead     int64
	syscallsWrite    int64
	readBytesLogical int64
}

// Run executes one measurement run and returns the finalized result
// records, sorted by metric description in descending lexical order.
// A cooperative failure reported by the benchmark yields an empty list
// and no error; a fatal introspection failure yields an error.
func (e *Executor) Run(b *core.Benchmark) ([]core.Result, error) {
	cfg := b.Config
	applyDefaults(&cfg)

	log := e.log.WithFields(logrus.Fields{
		"benchmark": b.Name,
		"target":    b.Target,
	})

	// Warmup runs with no measurement hooks active.
	for i := 0; i < cfg.WarmupIterations; i++ {
		if b.Failed {
			return []core.Result{}, nil
		}
		b.CurrentIteration = i
		b.RunFn(b)
	}
	if b.Failed {
		return []core.Result{}, nil
	}

	proc := e.proc
	if proc == nil && anyOSMetric(cfg.Metrics) {
		p, err := procstats.New()
		if err != nil {
			return nil, fmt.Errorf("creating process statistics producer: %w", err)
		}
		proc = p
	}

	// Metrics without platform support are silently dropped.
	kept := make([]core.Metric, 0, len(cfg.Metrics))
	for _, m := range cfg.Metrics {
		if m.Family() == core.FamilyOS && !proc.MetricSupported(m) {
			log.WithField("metric", m.String()).Debug("metric unsupported on this platform, dropped")
			continue
		}
		kept = append(kept, m)
	}

	var (
		needsOS        bool
		needsAlloc     bool
		needsLifecycle bool
		needsThreads   bool
	)
	statistics := [core.NumMetrics]*stats.Statistics{}
	for _, m := range kept {
		switch m.Family() {
		case core.FamilyOS:
			needsOS = true
		case core.FamilyAllocation:
			needsAlloc = true
		case core.FamilyLifecycle:
			needsLifecycle = true
		}
		if m == core.Threads || m == core.ThreadsRunning {
			needsThreads = true
		}
		units := stats.UnitsCount
		if m.IsTime() {
			units = cfg.TimeUnits
		}
		statistics[m] = stats.New(units, m.Polarity())
	}

	var ovh overhead
	if needsOS {
		proc.Configure(kept)
		first, err := proc.Snapshot()
		if err != nil {
			return nil, fmt.Errorf("calibration snapshot: %w", err)
		}
		second, err := proc.Snapshot()
		if err != nil {
			return nil, fmt.Errorf("calibration snapshot: %w", err)
		}
		ovh = overhead{
			syscallsRead:     clamp(second.SyscallsRead - first.SyscallsRead),
			syscallsWrite:    clamp(second.SyscallsWrite - first.SyscallsWrite),
			readBytesLogical: clamp(second.ReadBytesLogical - first.ReadBytesLogical),
		}
		log.WithFields(logrus.Fields{
			"syscallsRead":     ovh.syscallsRead,
			"syscallsWrite":    ovh.syscallsWrite,
			"readBytesLogical": ovh.readBytesLogical,
		}).Debug("calibrated instrumentation overhead")
	}

	record := func(m core.Metric, v int64) {
		if s := statistics[m]; s != nil {
			s.Add(v)
		}
	}

	var (
		startProc   procstats.Snapshot
		startMalloc alloc.MallocSnapshot
		startLife   alloc.LifecycleSnapshot
		startTime   time.Time
		runErr      error
	)

	b.BeforeMeasurement = func() {
		if needsAlloc {
			startMalloc = alloc.ReadMallocStats()
		}
		if needsLifecycle {
			startLife = e.lifecycle.Snapshot()
		}
		if needsOS {
			s, err := proc.Snapshot()
			if err != nil {
				runErr = err
				return
			}
			startProc = s
		}
		// Start time is recorded last so snapshot cost stays outside
		// the timed interval.
		startTime = e.clock.Now()
	}

	b.AfterMeasurement = func() {
		stop := e.clock.Now()

		if needsOS {
			s, err := proc.Snapshot()
			if err != nil {
				runErr = err
			} else {
				record(core.CPUUser, s.CPUUserNs-startProc.CPUUserNs)
				record(core.CPUSystem, s.CPUSystemNs-startProc.CPUSystemNs)
				record(core.CPUTotal, s.CPUTotalNs-startProc.CPUTotalNs)
				record(core.PeakMemoryResident, s.PeakRSSBytes)
				record(core.PeakMemoryVirtual, s.PeakVSizeBytes)
				record(core.SyscallsRead, clamp(s.SyscallsRead-startProc.SyscallsRead-ovh.syscallsRead))
				record(core.SyscallsWrite, clamp(s.SyscallsWrite-startProc.SyscallsWrite-ovh.syscallsWrite))
				record(core.ReadBytesLogical, clamp(s.ReadBytesLogical-startProc.ReadBytesLogical-ovh.readBytesLogical))
				record(core.WriteBytesLogical, s.WriteBytesLogical-startProc.WriteBytesLogical)
				record(core.ReadBytesPhysical, s.ReadBytesPhysical-startProc.ReadBytesPhysical)
				record(core.WriteBytesPhysical, s.WriteBytesPhysical-startProc.WriteBytesPhysical)
				record(core.ContextSwitches, s.ContextSwitches-startProc.ContextSwitches)
				record(core.Threads, s.Threads)
				record(core.ThreadsRunning, s.ThreadsRunning)
			}
		}

		if needsAlloc {
			ms := alloc.ReadMallocStats()
			record(core.MallocCountTotal, ms.CountTotal-startMalloc.CountTotal)
			record(core.MallocCountSmall, ms.CountSmall-startMalloc.CountSmall)
			record(core.MallocCountLarge, ms.CountLarge-startMalloc.CountLarge)
			record(core.AllocatedResidentMemory, ms.ResidentBytes)
			record(core.MemoryLeaked, clamp(ms.LiveBytes-startMalloc.LiveBytes))
		}

		if needsLifecycle {
			ls := e.lifecycle.Snapshot()
			allocs := ls.Allocs - startLife.Allocs
			retains := clamp(ls.Retains - startLife.Retains - alloc.ProbeCost)
			releases := clamp(ls.Releases - startLife.Releases - alloc.ProbeCost)
			record(core.ObjectAllocCount, allocs)
			record(core.RetainCount, retains)
			record(core.ReleaseCount, releases)
			delta := allocs + retains - releases
			if delta < 0 {
				delta = -delta
			}
			record(core.RetainReleaseDelta, delta)
		}

		// Non-positive durations happen on some clock sources; skip the
		// timing samples for this iteration rather than record zero.
		if d := stop.Sub(startTime); d > 0 {
			record(core.WallClock, int64(d))
			record(core.Throughput, int64(math.Round(1e9/float64(d))))
		}
	}

	b.CustomMetric = func(v int64) {
		record(core.Custom, v)
	}

	defer func() {
		b.BeforeMeasurement = nil
		b.AfterMeasurement = nil
		b.CustomMetric = nil
	}()

	var limiter *rate.Limiter
	if cfg.TargetRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.TargetRate), cfg.TargetRate)
	}

	if needsThreads {
		proc.StartSampling(e.samplingInterval)
	}
	if needsLifecycle {
		e.lifecycle.Hook()
	}

	// The loop keeps running until both the iteration cap and the time
	// cap have been met; an unset cap counts as already met. Bounds are
	// checked only between iterations, so a long final iteration is
	// counted in full.
	loopStart := e.clock.Now()
	iterations := 0
	for {
		if b.Failed || runErr != nil {
			break
		}
		iterationsDone := cfg.MaxIterations <= 0 || iterations >= cfg.MaxIterations
		timeDone := cfg.MaxDuration <= 0 || e.clock.Since(loopStart) >= cfg.MaxDuration
		if iterationsDone && timeDone {
			break
		}
		if limiter != nil {
			_ = limiter.Wait(context.Background())
		}
		b.CurrentIteration = cfg.WarmupIterations + iterations
		b.BeforeMeasurement()
		b.RunFn(b)
		b.AfterMeasurement()
		iterations++
	}

	if needsLifecycle {
		e.lifecycle.Unhook()
	}
	if needsThreads {
		proc.StopSampling()
	}

	if runErr != nil {
		return nil, fmt.Errorf("process snapshot failed: %w", runErr)
	}
	if b.Failed {
		log.WithField("reason", b.FailureReason).Warn("benchmark reported failure, discarding partial results")
		return []core.Result{}, nil
	}

	results := make([]core.Result, 0, len(kept))
	for _, m := range kept {
		s := statistics[m]
		if s == nil || s.Count() == 0 {
			continue
		}
		var threshold *core.Threshold
		if t, ok := cfg.Thresholds[m]; ok {
			tc := t
			threshold = &tc
		}
		results = append(results, core.Result{
			Metric:           m,
			TimeUnits:        cfg.TimeUnits,
			ScalingFactor:    cfg.ScalingFactor,
			WarmupIterations: cfg.WarmupIterations,
			Threshold:        threshold,
			Statistics:       s,
		})
	}
	core.SortResults(results)

	log.WithFields(logrus.Fields{
		"iterations": iterations,
		"results":    len(results),
	}).Debug("measurement run complete")
	return results, nil
}

func applyDefaults(cfg *core.Configuration) {
	def := core.DefaultConfiguration()
	if len(cfg.Metrics) == 0 {
		cfg.Metrics = def.Metrics
	}
	if cfg.MaxIterations <= 0 && cfg.MaxDuration <= 0 {
		cfg.MaxIterations = def.MaxIterations
		cfg.MaxDuration = def.MaxDuration
	}
	if cfg.ScalingFactor < 1 {
		cfg.ScalingFactor = 1
	}
	if cfg.TimeUnits == stats.UnitsCount {
		cfg.TimeUnits = stats.UnitsNanoseconds
	}
}

func anyOSMetric(metrics []core.Metric) bool {
	for _, m := range metrics {
		if m.Family() == core.FamilyOS {
			return true
		}
	}
	return false
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
