package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/victorazesc/appseed-sub000/internal/domain"
	"github.com/victorazesc/appseed-sub000/internal/service/lead"
)

var _ leadReader = &leadReaderMock{}

type leadReaderMock struct {
	GetFunc        func(ctx context.Context, id uuid.UUID) (lead.Detail, error)
	ListActiveFunc func(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error)

	calls struct {
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListActive []struct {
			Ctx    context.Context
			Filter domain.LeadFilter
		}
	}
	lockGet        sync.RWMutex
	lockListActive sync.RWMutex
}

func (mock *leadReaderMock) Get(ctx context.Context, id uuid.UUID) (lead.Detail, error) {
	if mock.GetFunc == nil {
		panic("leadReaderMock.GetFunc: method is nil but leadReader.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *leadReaderMock) GetCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockGet.RLock()
	calls = mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *leadReaderMock) ListActive(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	if mock.ListActiveFunc == nil {
		panic("leadReaderMock.ListActiveFunc: method is nil but leadReader.ListActive was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.LeadFilter
	}{
		Ctx:    ctx,
		Filter: filter,
	}
	mock.lockListActive.Lock()
	mock.calls.ListActive = append(mock.calls.ListActive, callInfo)
	mock.lockListActive.Unlock()
	return mock.ListActiveFunc(ctx, filter)
}

func (mock *leadReaderMock) ListActiveCalls() []struct {
	Ctx    context.Context
	Filter domain.LeadFilter
} {
	var calls []struct {
		Ctx    context.Context
		Filter domain.LeadFilter
	}
	mock.lockListActive.RLock()
	calls = mock.calls.ListActive
	mock.lockListActive.RUnlock()
	return calls
}
