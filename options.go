package subwayvalidator

import (
	"github.com/theoremus-urban-solutions/subway-validator/internal/logging"
	"github.com/theoremus-urban-solutions/subway-validator/internal/metrics"
	"github.com/theoremus-urban-solutions/subway-validator/internal/recovery"
)

// Option configures a Validator.
type Option func(*Validator)

// WithLogger attaches a structured logger. Defaults to the console logger
// returned by logging.New(), at info level.
func WithLogger(l logging.Logger) Option {
	return func(v *Validator) { v.logger = l }
}

// WithMetrics attaches a Prometheus recorder so notices and per-city
// duration are observed as the validator runs.
func WithMetrics(r *metrics.Recorder) Option {
	return func(v *Validator) { v.metrics = r }
}

// WithRecoveryIndex supplies externally loaded recovery itineraries used
// to recover stop order on routes whose rails can't otherwise be
// disambiguated.
func WithRecoveryIndex(idx *recovery.Index) Option {
	return func(v *Validator) { v.recovery = idx }
}
