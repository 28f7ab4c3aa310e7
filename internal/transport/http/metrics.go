package httptransport

import "expvar"

var (
	metricJoinTotal  = expvar.NewInt("join_total")
	metricJoinErrors = expvar.NewInt("join_errors_total")

	metricTxTotal  = expvar.NewInt("tx_total")
	metricTxErrors = expvar.NewInt("tx_errors_total")

	metricStealSuccessTotal = expvar.NewInt("steal_success_total")
)
