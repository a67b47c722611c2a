package metrics

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/domain/config"
	"github.com/agentnft/beaconctl/internal/usecase"
)

const namespace = "beaconctl"

// Recorder collects upgrade outcomes in its own registry and writes them to a
// node_exporter textfile when a metrics file is configured
type Recorder struct {
	registry *prometheus.Registry
	file     string
	log      *slog.Logger

	modules        *prometheus.CounterVec
	failures       *prometheus.CounterVec
	moduleDuration *prometheus.HistogramVec
	gasUsed        *prometheus.CounterVec
	runs           *prometheus.CounterVec
	submitted      prometheus.Counter
	lastRun        prometheus.Gauge
}

// NewRecorder creates a new Recorder
func NewRecorder(cfg *config.RuntimeConfig, log *slog.Logger) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		file:     cfg.MetricsFile,
		log:      log,

		modules: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "upgrade",
				Name:      "modules_total",
				Help:      "Modules processed, by outcome.",
			},
			[]string{"module", "outcome"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "upgrade",
				Name:      "failures_total",
				Help:      "Module failures, by error kind.",
			},
			[]string{"module", "kind"},
		),
		moduleDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "upgrade",
				Name:      "module_duration_seconds",
				Help:      "Time spent upgrading one module.",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10), // 0.5s to ~4m
			},
			[]string{"module"},
		),
		gasUsed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "upgrade",
				Name:      "gas_used_total",
				Help:      "Gas used by confirmed upgrade transactions.",
			},
			[]string{"module"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "upgrade",
				Name:      "runs_total",
				Help:      "Upgrade runs, by result.",
			},
			[]string{"result"},
		),
		submitted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "upgrade",
				Name:      "transactions_submitted_total",
				Help:      "Upgrade transactions that reached the node.",
			},
		),
		lastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "upgrade",
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the last upgrade run finished.",
			},
		),
	}

	r.registry.MustRegister(
		r.modules,
		r.failures,
		r.moduleDuration,
		r.gasUsed,
		r.runs,
		r.submitted,
		r.lastRun,
	)
	return r
}

// Registry exposes the collectors, mainly for tests
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveModule records the outcome of one module
func (r *Recorder) ObserveModule(result *domain.UpgradeResult) {
	module := result.Module.Key()
	r.modules.WithLabelValues(module, string(result.Outcome)).Inc()

	if result.Outcome == domain.OutcomeSkipped {
		return
	}
	r.moduleDuration.WithLabelValues(module).Observe(result.Duration.Seconds())
	if result.GasUsed > 0 {
		r.gasUsed.WithLabelValues(module).Add(float64(result.GasUsed))
	}
	if result.Outcome == domain.OutcomeFailed {
		r.failures.WithLabelValues(module, result.ErrorKind()).Inc()
	}
}

// ObserveRun records the aggregate of a run
func (r *Recorder) ObserveRun(summary *domain.UpgradeSummary) {
	result := "success"
	if !summary.Success() {
		result = "failure"
	}
	r.runs.WithLabelValues(result).Inc()
	r.submitted.Add(float64(summary.TransactionsSubmitted))
	r.lastRun.Set(float64(time.Now().Unix()))
}

// Flush writes the registry to the metrics file. Without a file it does nothing.
func (r *Recorder) Flush() error {
	if r.file == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(r.file, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", r.file, err)
	}
	r.log.Debug("metrics written", "file", r.file)
	return nil
}

// Ensure the adapter implements the interface
var _ usecase.UpgradeMetrics = (*Recorder)(nil)
