package transport

import (
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/hydrakv/hydrakv-go/rpc/common"
)

// --------------------------------------------------------------------------
// Per-operation instrumentation
// --------------------------------------------------------------------------

// Observe records one finished exchange for the given transport and
// operation. Counters and histograms are created on first use and can be
// exported by the embedding application via metrics.WritePrometheus.
func Observe(transport string, op common.Operation, start time.Time, err error) {
	labels := fmt.Sprintf(`transport=%q,op=%q`, transport, op)

	metrics.GetOrCreateCounter(fmt.Sprintf(`hydrakv_client_requests_total{%s}`, labels)).Inc()
	metrics.GetOrCreateHistogram(fmt.Sprintf(`hydrakv_client_request_duration_seconds{%s}`, labels)).
		UpdateDuration(start)

	if err != nil {
		metrics.GetOrCreateCounter(fmt.Sprintf(`hydrakv_client_errors_total{%s}`, labels)).Inc()
	}
}
