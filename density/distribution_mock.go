// Copyright 2025 the densiq authors
// This file is part of densiq, a quantile-based density approximation toolkit
//
// densiq is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// densiq is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with densiq. If not, see <http://www.gnu.org/licenses/>.

// Package density is a generated GoMock package.
package density

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockDistribution is a mock of Distribution interface.
type MockDistribution struct {
	ctrl     *gomock.Controller
	recorder *MockDistributionMockRecorder
	isgomock struct{}
}

// MockDistributionMockRecorder is the mock recorder for MockDistribution.
type MockDistributionMockRecorder struct {
	mock *MockDistribution
}

// NewMockDistribution creates a new mock instance.
func NewMockDistribution(ctrl *gomock.Controller) *MockDistribution {
	mock := &MockDistribution{ctrl: ctrl}
	mock.recorder = &MockDistributionMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockDistribution) EXPECT() *MockDistributionMockRecorder {
	return m.recorder
}

// CDF mocks base method.
func (m *MockDistribution) CDF(x float64) float64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CDF", x)
	ret0, _ := ret[0].(float64)
	return ret0
}

// CDF indicates an expected call of CDF.
func (mr *MockDistributionMockRecorder) CDF(x any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CDF", reflect.TypeOf((*MockDistribution)(nil).CDF), x)
}

// Prob mocks base method.
func (m *MockDistribution) Prob(x float64) float64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Prob", x)
	ret0, _ := ret[0].(float64)
	return ret0
}

// Prob indicates an expected call of Prob.
func (mr *MockDistributionMockRecorder) Prob(x any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Prob", reflect.TypeOf((*MockDistribution)(nil).Prob), x)
}

// Quantile mocks base method.
func (m *MockDistribution) Quantile(p float64) float64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Quantile", p)
	ret0, _ := ret[0].(float64)
	return ret0
}

// Quantile indicates an expected call of Quantile.
func (mr *MockDistributionMockRecorder) Quantile(p any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Quantile", reflect.TypeOf((*MockDistribution)(nil).Quantile), p)
}
