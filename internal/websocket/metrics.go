package websocket

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/luciancaetano/deckconn/protocol"
)

const metricsNamespace = "deckconn"

// Decode error kinds used as the "kind" label.
const (
	decodeKindInvalidEnvelope  = "invalid_envelope"
	decodeKindMalformedPayload = "malformed_payload"
	decodeKindUnrecognized     = "unrecognized"
)

// metrics is nil when no registerer is configured; every method is nil safe.
type metrics struct {
	framesReceived   prometheus.Counter
	eventsDispatched *prometheus.CounterVec
	decodeErrors     *prometheus.CounterVec
	commandsSent     *prometheus.CounterVec
	sendErrors       *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	factory := promauto.With(reg)

	return &metrics{
		framesReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "frames_received_total",
			Help:      "Total number of frames read from the host",
		}),
		eventsDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "events_dispatched_total",
			Help:      "Total number of events handed to the subscriber",
		}, []string{"event"}),
		decodeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "decode_errors_total",
			Help:      "Total number of frames dropped by the decoder",
		}, []string{"kind"}),
		commandsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "commands_sent_total",
			Help:      "Total number of commands written to the host",
		}, []string{"event"}),
		sendErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "send_errors_total",
			Help:      "Total number of commands that failed to be written",
		}, []string{"event"}),
	}
}

func (m *metrics) frameReceived() {
	if m == nil {
		return
	}
	m.framesReceived.Inc()
}

func (m *metrics) eventDispatched(verb string) {
	if m == nil {
		return
	}
	m.eventsDispatched.WithLabelValues(verb).Inc()
}

func (m *metrics) decodeFailed(kind string) {
	if m == nil {
		return
	}
	m.decodeErrors.WithLabelValues(kind).Inc()
}

func (m *metrics) commandSent(verb string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.sendErrors.WithLabelValues(verb).Inc()
		return
	}
	m.commandsSent.WithLabelValues(verb).Inc()
}

// decodeErrorKind classifies a Decode error for the kind label.
func decodeErrorKind(err error) string {
	if errors.Is(err, protocol.ErrMalformedPayload) {
		return decodeKindMalformedPayload
	}
	return decodeKindInvalidEnvelope
}
