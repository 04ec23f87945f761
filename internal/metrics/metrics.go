// Package metrics tracks persistence outcomes: how many generated files
// were rewritten, how many were left untouched because their content had
// not changed, and how many failed.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels used on the files counter.
const (
	ResultWritten   = "written"
	ResultUnchanged = "unchanged"
	ResultFailed    = "failed"
)

// Snapshot is a point-in-time copy of a Recorder's counters.
type Snapshot struct {
	Written      int64
	Unchanged    int64
	Failed       int64
	BytesWritten int64
}

// Total returns the number of files the recorder has seen.
func (s Snapshot) Total() int64 {
	return s.Written + s.Unchanged + s.Failed
}

// Recorder counts persistence outcomes. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	snap  Snapshot
	mutex sync.Mutex

	files *prometheus.CounterVec
	bytes prometheus.Counter
}

// NewRecorder creates a recorder that only keeps in-process counters.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// NewPrometheusRecorder creates a recorder that also exports its counters
// under namespace and registers them with reg.
func NewPrometheusRecorder(namespace string, reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		files: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "persist",
				Name:      "files_total",
				Help:      "Generated files handled by write-if-changed, by result",
			},
			[]string{"result"},
		),
		bytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "persist",
				Name:      "bytes_written_total",
				Help:      "Bytes written to generated files",
			},
		),
	}

	for _, c := range []prometheus.Collector{r.files, r.bytes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// FileWritten records a rewritten file of n bytes.
func (r *Recorder) FileWritten(n int64) {
	if r == nil {
		return
	}
	r.mutex.Lock()
	r.snap.Written++
	r.snap.BytesWritten += n
	r.mutex.Unlock()

	if r.files != nil {
		r.files.WithLabelValues(ResultWritten).Inc()
		r.bytes.Add(float64(n))
	}
}

// FileUnchanged records a file whose content already matched.
func (r *Recorder) FileUnchanged() {
	if r == nil {
		return
	}
	r.mutex.Lock()
	r.snap.Unchanged++
	r.mutex.Unlock()

	if r.files != nil {
		r.files.WithLabelValues(ResultUnchanged).Inc()
	}
}

// FileFailed records a file that could not be persisted.
func (r *Recorder) FileFailed() {
	if r == nil {
		return
	}
	r.mutex.Lock()
	r.snap.Failed++
	r.mutex.Unlock()

	if r.files != nil {
		r.files.WithLabelValues(ResultFailed).Inc()
	}
}

// Snapshot returns a copy of the current counters.
func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.snap
}

// UnchangedRate returns the share of files left untouched, as a percentage.
func (r *Recorder) UnchangedRate() float64 {
	s := r.Snapshot()
	if s.Total() == 0 {
		return 0.0
	}
	return float64(s.Unchanged) / float64(s.Total()) * 100.0
}

// Reset zeroes the in-process counters. Exported prometheus counters are
// monotonic and are left alone.
func (r *Recorder) Reset() {
	if r == nil {
		return
	}
	r.mutex.Lock()
	r.snap = Snapshot{}
	r.mutex.Unlock()
}
