package procstats

import (
	"math/rand"
	"sync"
	"time"
)

type samplerState int

const (
	samplerRunning samplerState = iota
	samplerShuttingDown
	samplerDone
)

// sampler continuously polls instantaneous thread counts on a dedicated
// goroutine and accumulates peaks. Thread counts are point samples, so
// peaks observed between the start and stop snapshots would otherwise
// be missed.
type sampler struct {
	mu          sync.Mutex
	state       samplerState
	peakThreads int64
	peakRunning int64
	stopReq     chan struct{}
	done        chan struct{}
	interval    time.Duration
	read        func() (threads, running int64, err error)
}

// newSampler takes one synchronous sample before returning so the first
// snapshot after start never observes zero, then launches the sampling
// goroutine.
func newSampler(interval time.Duration, read func() (int64, int64, error)) *sampler {
	s := &sampler{
		state:    samplerRunning,
		stopReq:  make(chan struct{}),
		done:     make(chan struct{}),
		interval: interval,
		read:     read,
	}
	s.sample()
	go s.run()
	return s
}

func (s *sampler) run() {
	for {
		s.sample()

		s.mu.Lock()
		if s.state == samplerShuttingDown {
			s.state = samplerDone
			s.mu.Unlock()
			close(s.done)
			return
		}
		s.mu.Unlock()

		// Interruptible sleep: a stop request wakes the goroutine so
		// shutdown is not delayed by a full interval.
		select {
		case <-s.stopReq:
		case <-time.After(jitter(s.interval)):
		}
	}
}

func (s *sampler) sample() {
	threads, running, err := s.read()
	if err != nil {
		return
	}
	s.mu.Lock()
	if threads > s.peakThreads {
		s.peakThreads = threads
	}
	if running > s.peakRunning {
		s.peakRunning = running
	}
	s.mu.Unlock()
}

// peaks returns the accumulated peak thread counts.
func (s *sampler) peaks() (threads, running int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peakThreads, s.peakRunning
}

// stop requests shutdown and blocks until the sampling goroutine has
// signaled completion, guaranteeing the peaks are final.
func (s *sampler) stop() {
	s.mu.Lock()
	if s.state == samplerRunning {
		s.state = samplerShuttingDown
		close(s.stopReq)
	}
	s.mu.Unlock()
	<-s.done
}

// jitter spreads the sampling interval by ±10% to avoid lock-step
// aliasing with periodic system activity.
func jitter(d time.Duration) time.Duration {
	f := 0.9 + 0.2*rand.Float64()
	return time.Duration(float64(d) * f)
}
