package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder counts quizdrill activity on a private registry. The counters are
// written as a node-exporter textfile since the CLI has no HTTP endpoint.
type Recorder struct {
	reg *prometheus.Registry

	imports  *prometheus.CounterVec
	sessions prometheus.Counter
	answers  *prometheus.CounterVec
}

// New creates a recorder with all counters registered.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quizdrill",
			Name:      "imports_total",
			Help:      "Question bank imports by source format and result.",
		}, []string{"format", "result"}),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quizdrill",
			Name:      "sessions_finalized_total",
			Help:      "Practice sessions finalized.",
		}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quizdrill",
			Name:      "answers_total",
			Help:      "Answers recorded in finalized sessions.",
		}, []string{"correct"}),
	}
	r.reg.MustRegister(r.imports, r.sessions, r.answers)
	return r
}

// Import counts one import attempt. format is "delimited" or "spreadsheet".
func (r *Recorder) Import(format string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.imports.WithLabelValues(format, result).Inc()
}

// SessionFinalized counts a finalized session and its answers.
func (r *Recorder) SessionFinalized(correct, incorrect int) {
	r.sessions.Inc()
	r.answers.WithLabelValues("true").Add(float64(correct))
	r.answers.WithLabelValues("false").Add(float64(incorrect))
}

// WriteTextfile writes the current counters to path. An empty path is a
// no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}
