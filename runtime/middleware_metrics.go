// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
)

// Metrics wraps a Handler with prometheus counters for send/recv/error,
// grounded on a generic Averager/Counter registration pattern
// (metrics/metric.go), swapped from its hand-rolled counters to
// prometheus.Registerer directly.
type Metrics struct {
	next Handler

	sendTotal  *prometheus.CounterVec
	recvTotal  *prometheus.CounterVec
	errorTotal *prometheus.CounterVec
}

// NewMetrics registers counters under namespace on reg and returns a
// Handler wrapping next.
func NewMetrics(next Handler, reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		next: next,
		sendTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "send_total",
			Help:      "Total number of send operations issued, by peer.",
		}, []string{"peer"}),
		recvTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recv_total",
			Help:      "Total number of recv operations issued, by peer.",
		}, []string{"peer"}),
		errorTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "error_total",
			Help:      "Total number of operation failures, by operation kind.",
		}, []string{"operation"}),
	}
	for _, c := range []prometheus.Collector{m.sendTotal, m.recvTotal, m.errorTotal} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Send(ctx context.Context, ep *Endpoint, to role.Role, msg message.Message) error {
	err := m.next.Send(ctx, ep, to, msg)
	m.sendTotal.WithLabelValues(to.String()).Inc()
	if err != nil {
		m.errorTotal.WithLabelValues("send").Inc()
	}
	return err
}

func (m *Metrics) Recv(ctx context.Context, ep *Endpoint, from role.Role) (message.Message, error) {
	msg, err := m.next.Recv(ctx, ep, from)
	m.recvTotal.WithLabelValues(from.String()).Inc()
	if err != nil {
		m.errorTotal.WithLabelValues("recv").Inc()
	}
	return msg, err
}

func (m *Metrics) Choose(ctx context.Context, ep *Endpoint, peer role.Role, label string) error {
	err := m.next.Choose(ctx, ep, peer, label)
	if err != nil {
		m.errorTotal.WithLabelValues("choose").Inc()
	}
	return err
}

func (m *Metrics) Offer(ctx context.Context, ep *Endpoint, from role.Role) (string, error) {
	label, err := m.next.Offer(ctx, ep, from)
	if err != nil {
		m.errorTotal.WithLabelValues("offer").Inc()
	}
	return label, err
}

func (m *Metrics) Broadcast(ctx context.Context, ep *Endpoint, recipients []role.Role, msg message.Message) error {
	err := m.next.Broadcast(ctx, ep, recipients, msg)
	for _, r := range recipients {
		m.sendTotal.WithLabelValues(r.String()).Inc()
	}
	if err != nil {
		m.errorTotal.WithLabelValues("broadcast").Inc()
	}
	return err
}

func (m *Metrics) WithTimeout(ctx context.Context, ep *Endpoint, at role.Role, dur time.Duration, body func(context.Context) error) error {
	err := m.next.WithTimeout(ctx, ep, at, dur, body)
	if err != nil {
		m.errorTotal.WithLabelValues("with_timeout").Inc()
	}
	return err
}
