// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package runtimemock provides a hand-authored gomock-shaped mock of
// runtime.Handler, in the style mockgen would generate (grounded on the
// teacher's validatorsmock package), for tests that need to assert on
// the sequence of effects a local program issues without running a
// real handler.
package runtimemock

import (
	"context"
	"reflect"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
	"github.com/luxfi/choreo/runtime"
)

// Handler is a mock of runtime.Handler.
type Handler struct {
	ctrl     *gomock.Controller
	recorder *HandlerMockRecorder
}

// HandlerMockRecorder is the recorder for Handler.
type HandlerMockRecorder struct {
	mock *Handler
}

// NewHandler returns a new mock Handler.
func NewHandler(ctrl *gomock.Controller) *Handler {
	mock := &Handler{ctrl: ctrl}
	mock.recorder = &HandlerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *Handler) EXPECT() *HandlerMockRecorder {
	return m.recorder
}

func (m *Handler) Send(ctx context.Context, ep *runtime.Endpoint, to role.Role, msg message.Message) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Send", ctx, ep, to, msg)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *HandlerMockRecorder) Send(ctx, ep, to, msg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Send", reflect.TypeOf((*Handler)(nil).Send), ctx, ep, to, msg)
}

func (m *Handler) Recv(ctx context.Context, ep *runtime.Endpoint, from role.Role) (message.Message, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Recv", ctx, ep, from)
	ret0, _ := ret[0].(message.Message)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *HandlerMockRecorder) Recv(ctx, ep, from any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Recv", reflect.TypeOf((*Handler)(nil).Recv), ctx, ep, from)
}

func (m *Handler) Choose(ctx context.Context, ep *runtime.Endpoint, peer role.Role, label string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Choose", ctx, ep, peer, label)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *HandlerMockRecorder) Choose(ctx, ep, peer, label any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Choose", reflect.TypeOf((*Handler)(nil).Choose), ctx, ep, peer, label)
}

func (m *Handler) Offer(ctx context.Context, ep *runtime.Endpoint, from role.Role) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Offer", ctx, ep, from)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *HandlerMockRecorder) Offer(ctx, ep, from any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Offer", reflect.TypeOf((*Handler)(nil).Offer), ctx, ep, from)
}

func (m *Handler) Broadcast(ctx context.Context, ep *runtime.Endpoint, recipients []role.Role, msg message.Message) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Broadcast", ctx, ep, recipients, msg)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *HandlerMockRecorder) Broadcast(ctx, ep, recipients, msg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Broadcast", reflect.TypeOf((*Handler)(nil).Broadcast), ctx, ep, recipients, msg)
}

func (m *Handler) WithTimeout(ctx context.Context, ep *runtime.Endpoint, at role.Role, dur time.Duration, body func(context.Context) error) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "WithTimeout", ctx, ep, at, dur, body)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *HandlerMockRecorder) WithTimeout(ctx, ep, at, dur, body any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WithTimeout", reflect.TypeOf((*Handler)(nil).WithTimeout), ctx, ep, at, dur, body)
}
