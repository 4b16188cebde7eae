package handler_test

import (
	"context"
	"scaffold-rental/internal/domain/dashboard"
	"scaffold-rental/internal/domain/identity"
	"scaffold-rental/internal/domain/record"

	"github.com/stretchr/testify/mock"
)

type MockRecordService[T record.Entity] struct {
	mock.Mock
	collection string
}

func (_m *MockRecordService[T]) Collection() string { return _m.collection }

func (_m *MockRecordService[T]) List(ctx context.Context) ([]T, error) {
	ret := _m.Called(ctx)
	var r0 []T
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]T)
	}
	return r0, ret.Error(1)
}

func (_m *MockRecordService[T]) Get(ctx context.Context, key string) (T, error) {
	ret := _m.Called(ctx, key)
	var r0 T
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(T)
	}
	return r0, ret.Error(1)
}

func (_m *MockRecordService[T]) Add(ctx context.Context, rec T) (T, error) {
	ret := _m.Called(ctx, rec)
	var r0 T
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(T)
	}
	return r0, ret.Error(1)
}

func (_m *MockRecordService[T]) Update(ctx context.Context, key string, rec T) (T, error) {
	ret := _m.Called(ctx, key, rec)
	var r0 T
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(T)
	}
	return r0, ret.Error(1)
}

func (_m *MockRecordService[T]) Delete(ctx context.Context, key string) error {
	return _m.Called(ctx, key).Error(0)
}

type MockIdentityService struct {
	mock.Mock
}

func (_m *MockIdentityService) Role(ctx context.Context, principal string) (identity.Role, error) {
	ret := _m.Called(ctx, principal)
	return ret.Get(0).(identity.Role), ret.Error(1)
}

func (_m *MockIdentityService) IsAdmin(ctx context.Context, principal string) (bool, error) {
	ret := _m.Called(ctx, principal)
	return ret.Bool(0), ret.Error(1)
}

func (_m *MockIdentityService) Profile(ctx context.Context, principal string) (identity.Profile, error) {
	ret := _m.Called(ctx, principal)
	return ret.Get(0).(identity.Profile), ret.Error(1)
}

func (_m *MockIdentityService) UserProfile(ctx context.Context, caller, principal string) (identity.Profile, error) {
	ret := _m.Called(ctx, caller, principal)
	return ret.Get(0).(identity.Profile), ret.Error(1)
}

func (_m *MockIdentityService) SaveProfile(ctx context.Context, principal string, profile identity.Profile) (identity.Profile, error) {
	ret := _m.Called(ctx, principal, profile)
	return ret.Get(0).(identity.Profile), ret.Error(1)
}

func (_m *MockIdentityService) AssignRole(ctx context.Context, caller, principal string, role identity.Role) error {
	return _m.Called(ctx, caller, principal, role).Error(0)
}

type stubSummary struct {
	summary dashboard.Summary
	err     error
}

func (s stubSummary) Summary(context.Context) (dashboard.Summary, error) { return s.summary, s.err }
