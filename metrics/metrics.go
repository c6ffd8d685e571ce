package metrics

import "github.com/prometheus/client_golang/prometheus"

// ServerMetrics are the counters and gauges updated by the server aio
// engine.
type ServerMetrics struct {
	RequestsProcessed prometheus.Counter
	ProcessorErrors   prometheus.Counter
	ProcessorPanics   prometheus.Counter
	RecvErrors        prometheus.Counter
	SendErrors        prometheus.Counter
}

// NewServerMetrics constructs and registers ServerMetrics against reg.
func NewServerMetrics(reg prometheus.Registerer) *ServerMetrics {
	m := &ServerMetrics{
		RequestsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rpcserver_requests_processed_total",
			Help: "Total number of replies sent successfully, including empty replies after a processor error or panic.",
		}),
		ProcessorErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rpcserver_processor_errors_total",
			Help: "Total number of processor invocations that returned an error.",
		}),
		ProcessorPanics: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rpcserver_processor_panics_total",
			Help: "Total number of processor invocations that panicked.",
		}),
		RecvErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rpcserver_recv_errors_total",
			Help: "Total number of aio context receive errors.",
		}),
		SendErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rpcserver_send_errors_total",
			Help: "Total number of aio context send errors.",
		}),
	}
	reg.MustRegister(m.RequestsProcessed, m.ProcessorErrors, m.ProcessorPanics, m.RecvErrors, m.SendErrors)
	return m
}

// ClientMetrics are the counters and gauges updated by the client aio
// engine.
type ClientMetrics struct {
	RequestsSubmitted   prometheus.Counter
	RequestsSucceeded   prometheus.Counter
	RequestsFailed      prometheus.Counter
	CapacityRejections  prometheus.Counter
	TicketsAvailable    prometheus.Gauge
	ContextsRegistered  prometheus.Gauge
	RepliesDropped      prometheus.Counter
}

// NewClientMetrics constructs and registers ClientMetrics against reg.
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	m := &ClientMetrics{
		RequestsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rpcclient_requests_submitted_total",
			Help: "Total number of requests submitted via send_with_callback.",
		}),
		RequestsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rpcclient_requests_succeeded_total",
			Help: "Total number of requests whose callback delivered a reply.",
		}),
		RequestsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rpcclient_requests_failed_total",
			Help: "Total number of requests whose callback delivered an error.",
		}),
		CapacityRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rpcclient_capacity_rejections_total",
			Help: "Total number of submissions rejected due to ticket exhaustion.",
		}),
		TicketsAvailable: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rpcclient_tickets_available",
			Help: "Current number of unused tickets in the capacity budget.",
		}),
		ContextsRegistered: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rpcclient_contexts_registered",
			Help: "Current number of aio contexts held by the registry task.",
		}),
		RepliesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rpcclient_replies_dropped_total",
			Help: "Total number of replies dropped by a full reply channel.",
		}),
	}
	reg.MustRegister(m.RequestsSubmitted, m.RequestsSucceeded, m.RequestsFailed, m.CapacityRejections,
		m.TicketsAvailable, m.ContextsRegistered, m.RepliesDropped)
	return m
}
