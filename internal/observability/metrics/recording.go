package metrics

import (
	"sync"
	"time"

	"github.com/antly/antly-api/internal/observability/statsd"
)

// Sample is one recorded metric.
type Sample struct {
	Name  string
	Value int64
	Dur   time.Duration
	Tags  map[string]string
}

// RecordingSink keeps every metric in memory. Tests use it in place of a StatsD client.
type RecordingSink struct {
	mu      sync.Mutex
	counts  []Sample
	timings []Sample
}

var _ statsd.Sink = (*RecordingSink)(nil)

func (s *RecordingSink) Count(name string, value int64, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts = append(s.counts, Sample{Name: name, Value: value, Tags: tags})
}

func (s *RecordingSink) Timing(name string, value time.Duration, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timings = append(s.timings, Sample{Name: name, Dur: value, Tags: tags})
}

// Counts returns a copy of the recorded counters.
func (s *RecordingSink) Counts() []Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Sample(nil), s.counts...)
}

// Timings returns a copy of the recorded timings.
func (s *RecordingSink) Timings() []Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Sample(nil), s.timings...)
}
