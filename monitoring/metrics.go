package monitoring

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"game-with-you/internal/status"
)

var (
	storeOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Total store operations by collection, operation and result",
		},
		[]string{"backend", "collection", "operation", "result"},
	)

	matchOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_outcomes_total",
			Help: "Session proposals by outcome",
		},
		[]string{"outcome"},
	)

	recordCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "records_listed",
			Help: "Number of records returned by the last list call",
		},
		[]string{"collection"},
	)
)

// TrackStoreOperation counts one store call and returns err unchanged.
func TrackStoreOperation(backend, collection, operation string, err error) error {
	storeOperations.WithLabelValues(backend, collection, operation, Result(err)).Inc()
	return err
}

func TrackList(collection string, n int) {
	recordCount.WithLabelValues(collection).Set(float64(n))
}

func TrackMatch(err error) {
	matchOutcomes.WithLabelValues(Result(err)).Inc()
}

// Result maps an error onto a short metric label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, status.ErrNotFound):
		return "not_found"
	case errors.Is(err, status.ErrStorageUnavailable):
		return "unavailable"
	case errors.Is(err, status.ErrMissingPseudo):
		return "missing_pseudo"
	case errors.Is(err, status.ErrNoDatesSelected):
		return "no_dates"
	case errors.Is(err, status.ErrNoCommonSlot):
		return "no_common_slot"
	case status.IsValidation(err):
		return "invalid"
	}
	return "error"
}
