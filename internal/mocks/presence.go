package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"messaging-service/internal/presence"
)

type TrackerMock struct {
	mock.Mock
}

func (m *TrackerMock) Indicate(ctx context.Context, typerID, counterpartID int) error {
	args := m.Called(ctx, typerID, counterpartID)
	return args.Error(0)
}

func (m *TrackerMock) Stop(ctx context.Context, typerID, counterpartID int) error {
	args := m.Called(ctx, typerID, counterpartID)
	return args.Error(0)
}

func (m *TrackerMock) Typing(ctx context.Context, typerID, counterpartID int) (bool, error) {
	args := m.Called(ctx, typerID, counterpartID)
	return args.Bool(0), args.Error(1)
}

var _ presence.Tracker = (*TrackerMock)(nil)
