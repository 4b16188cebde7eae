package identity

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) FindProfile(ctx context.Context, principal string) (Profile, error) {
	ret := _m.Called(ctx, principal)

	var r0 Profile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(Profile)
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository) SaveProfile(ctx context.Context, principal string, profile Profile) error {
	ret := _m.Called(ctx, principal, profile)
	return ret.Error(0)
}

func (_m *MockRepository) SetRole(ctx context.Context, principal string, role Role) error {
	ret := _m.Called(ctx, principal, role)
	return ret.Error(0)
}

var _ Repository = (*MockRepository)(nil)
