// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txpoolmock provides gomock-style test doubles for the
// txpool.Scoring, txpool.Readiness, and txpool.Listener interfaces, hand
// written in the shape mockgen would produce rather than generated,
// since the package has only three small interfaces to double.
package txpoolmock

import (
	"reflect"

	"github.com/luxfi/txpool/core/txpool"
	"go.uber.org/mock/gomock"
)

// MockScoring is a mock of the txpool.Scoring interface.
type MockScoring struct {
	ctrl     *gomock.Controller
	recorder *MockScoringMockRecorder
}

type MockScoringMockRecorder struct{ mock *MockScoring }

func NewMockScoring(ctrl *gomock.Controller) *MockScoring {
	m := &MockScoring{ctrl: ctrl}
	m.recorder = &MockScoringMockRecorder{m}
	return m
}

func (m *MockScoring) EXPECT() *MockScoringMockRecorder { return m.recorder }

func (m *MockScoring) Compare(a, b txpool.VerifiedTransaction) int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Compare", a, b)
	ret0, _ := ret[0].(int)
	return ret0
}

func (mr *MockScoringMockRecorder) Compare(a, b any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Compare",
		reflect.TypeOf((*MockScoring)(nil).Compare), a, b)
}

func (m *MockScoring) Choose(existing, candidate txpool.VerifiedTransaction) txpool.Decision {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Choose", existing, candidate)
	ret0, _ := ret[0].(txpool.Decision)
	return ret0
}

func (mr *MockScoringMockRecorder) Choose(existing, candidate any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Choose",
		reflect.TypeOf((*MockScoring)(nil).Choose), existing, candidate)
}

func (m *MockScoring) UpdateScores(entries []*txpool.QueueEntry) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "UpdateScores", entries)
}

func (mr *MockScoringMockRecorder) UpdateScores(entries any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateScores",
		reflect.TypeOf((*MockScoring)(nil).UpdateScores), entries)
}

// MockReadiness is a mock of the txpool.Readiness interface.
type MockReadiness struct {
	ctrl     *gomock.Controller
	recorder *MockReadinessMockRecorder
}

type MockReadinessMockRecorder struct{ mock *MockReadiness }

func NewMockReadiness(ctrl *gomock.Controller) *MockReadiness {
	m := &MockReadiness{ctrl: ctrl}
	m.recorder = &MockReadinessMockRecorder{m}
	return m
}

func (m *MockReadiness) EXPECT() *MockReadinessMockRecorder { return m.recorder }

func (m *MockReadiness) Classify(tx txpool.VerifiedTransaction) txpool.Readi {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Classify", tx)
	ret0, _ := ret[0].(txpool.Readi)
	return ret0
}

func (mr *MockReadinessMockRecorder) Classify(tx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Classify",
		reflect.TypeOf((*MockReadiness)(nil).Classify), tx)
}

// MockListener is a mock of the txpool.Listener interface.
type MockListener struct {
	ctrl     *gomock.Controller
	recorder *MockListenerMockRecorder
}

type MockListenerMockRecorder struct{ mock *MockListener }

func NewMockListener(ctrl *gomock.Controller) *MockListener {
	m := &MockListener{ctrl: ctrl}
	m.recorder = &MockListenerMockRecorder{m}
	return m
}

func (m *MockListener) EXPECT() *MockListenerMockRecorder { return m.recorder }

func (m *MockListener) Added(tx, old txpool.VerifiedTransaction) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Added", tx, old)
}

func (mr *MockListenerMockRecorder) Added(tx, old any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Added",
		reflect.TypeOf((*MockListener)(nil).Added), tx, old)
}

func (m *MockListener) Rejected(tx txpool.VerifiedTransaction, reason error) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Rejected", tx, reason)
}

func (mr *MockListenerMockRecorder) Rejected(tx, reason any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Rejected",
		reflect.TypeOf((*MockListener)(nil).Rejected), tx, reason)
}

func (m *MockListener) Dropped(tx, by txpool.VerifiedTransaction) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Dropped", tx, by)
}

func (mr *MockListenerMockRecorder) Dropped(tx, by any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Dropped",
		reflect.TypeOf((*MockListener)(nil).Dropped), tx, by)
}

func (m *MockListener) Cancelled(tx txpool.VerifiedTransaction) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Cancelled", tx)
}

func (mr *MockListenerMockRecorder) Cancelled(tx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Cancelled",
		reflect.TypeOf((*MockListener)(nil).Cancelled), tx)
}

func (m *MockListener) Invalid(tx txpool.VerifiedTransaction) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Invalid", tx)
}

func (mr *MockListenerMockRecorder) Invalid(tx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Invalid",
		reflect.TypeOf((*MockListener)(nil).Invalid), tx)
}

func (m *MockListener) Mined(tx txpool.VerifiedTransaction) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Mined", tx)
}

func (mr *MockListenerMockRecorder) Mined(tx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Mined",
		reflect.TypeOf((*MockListener)(nil).Mined), tx)
}

var (
	_ = (*MockScoring)(nil)
	_ = (*MockReadiness)(nil)
	_ = (*MockListener)(nil)
)
