//go:build !linux

package procstats

import (
	"time"

	"benchkit/internal/core"
)

// unsupportedProducer is the first-class no-support variant: snapshots
// are all zero and no OS metric is supported, so the executor silently
// drops the whole family.
type unsupportedProducer struct{}

func newPlatformProducer() (Producer, error) {
	return unsupportedProducer{}, nil
}

func (unsupportedProducer) Snapshot() (Snapshot, error)      { return Snapshot{}, nil }
func (unsupportedProducer) MetricSupported(core.Metric) bool { return false }
func (unsupportedProducer) Configure([]core.Metric)          {}
func (unsupportedProducer) StartSampling(time.Duration)      {}
func (unsupportedProducer) StopSampling()                    {}
