// Package mocks provides test doubles for the yandex client.
package mocks

import (
	"context"

	yandex "github.com/CodeTest-git/testovoe-otsivy/pkg/yandex"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// SearchOrganization provides a mock function with given fields: ctx, placeID
func (_m *MockClient) SearchOrganization(ctx context.Context, placeID string) (*yandex.Organization, error) {
	ret := _m.Called(ctx, placeID)

	if len(ret) == 0 {
		panic("no return value specified for SearchOrganization")
	}

	var r0 *yandex.Organization
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*yandex.Organization, error)); ok {
		return rf(ctx, placeID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *yandex.Organization); ok {
		r0 = rf(ctx, placeID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*yandex.Organization)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, placeID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient. It also registers a
// testing interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
