// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"context"
	"errors"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RealtimeConnections is the number of registered realtime channels.
	RealtimeConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "splitroom_realtime_connections",
		Help: "Number of live realtime channels.",
	})

	// RealtimeEvents counts events handed to channels, by event type.
	RealtimeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitroom_realtime_events_total",
		Help: "Realtime events queued for delivery, by type.",
	}, []string{"type"})

	// RealtimeDropped counts deliveries that failed and were swallowed.
	RealtimeDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitroom_realtime_dropped_total",
		Help: "Realtime events that could not be delivered to a channel.",
	})

	// RealtimeReplaced counts channels evicted by a newer registration.
	RealtimeReplaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitroom_realtime_replaced_total",
		Help: "Realtime channels closed because the same user reconnected.",
	})

	// SettlementsCreated counts committed settlements.
	SettlementsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitroom_settlements_created_total",
		Help: "Settlements committed.",
	})

	// TransfersSettled counts transfers stamped by settlements.
	TransfersSettled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitroom_transfers_settled_total",
		Help: "Transfers frozen into a settlement.",
	})

	// RoomsTornDown counts rooms deleted by an empty-room leave or a close.
	RoomsTornDown = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitroom_rooms_torn_down_total",
		Help: "Rooms deleted together with their ledger.",
	})

	rpcRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitroom_rpc_requests_total",
		Help: "RPC calls by procedure and result code.",
	}, []string{"procedure", "code"})

	rpcDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "splitroom_rpc_duration_seconds",
		Help:    "RPC latency by procedure.",
		Buckets: prometheus.DefBuckets,
	}, []string{"procedure"})
)

// Interceptor returns a Connect interceptor that records call counts and latency.
func Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeUnknown.String()
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					code = connectErr.Code().String()
				}
			}
			rpcRequests.WithLabelValues(procedure, code).Inc()
			rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())

			return resp, err
		}
	}
}
