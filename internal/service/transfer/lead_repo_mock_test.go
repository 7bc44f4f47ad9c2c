package transfer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/victorazesc/appseed-sub000/internal/domain"
)

var _ leadRepo = &leadRepoMock{}

type leadRepoMock struct {
	ArchiveFunc      func(ctx context.Context, id uuid.UUID, at time.Time) error
	CreateFunc       func(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (domain.Lead, error)

	calls struct {
		Archive []struct {
			Ctx context.Context
			ID  uuid.UUID
			At  time.Time
		}
		Create []struct {
			Ctx  context.Context
			Lead domain.Lead
		}
		GetForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockArchive      sync.RWMutex
	lockCreate       sync.RWMutex
	lockGetForUpdate sync.RWMutex
}

func (mock *leadRepoMock) Archive(ctx context.Context, id uuid.UUID, at time.Time) error {
	if mock.ArchiveFunc == nil {
		panic("leadRepoMock.ArchiveFunc: method is nil but leadRepo.Archive was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		At  time.Time
	}{
		Ctx: ctx,
		ID:  id,
		At:  at,
	}
	mock.lockArchive.Lock()
	mock.calls.Archive = append(mock.calls.Archive, callInfo)
	mock.lockArchive.Unlock()
	return mock.ArchiveFunc(ctx, id, at)
}

func (mock *leadRepoMock) ArchiveCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	At  time.Time
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
		At  time.Time
	}
	mock.lockArchive.RLock()
	calls = mock.calls.Archive
	mock.lockArchive.RUnlock()
	return calls
}

func (mock *leadRepoMock) Create(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	if mock.CreateFunc == nil {
		panic("leadRepoMock.CreateFunc: method is nil but leadRepo.Create was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Lead domain.Lead
	}{
		Ctx:  ctx,
		Lead: lead,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, lead)
}

func (mock *leadRepoMock) CreateCalls() []struct {
	Ctx  context.Context
	Lead domain.Lead
} {
	var calls []struct {
		Ctx  context.Context
		Lead domain.Lead
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *leadRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	if mock.GetForUpdateFunc == nil {
		panic("leadRepoMock.GetForUpdateFunc: method is nil but leadRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *leadRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockGetForUpdate.RLock()
	calls = mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}
