package lead

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/victorazesc/appseed-sub000/internal/domain"
)

var _ pipelineRepo = &pipelineRepoMock{}

type pipelineRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (domain.Pipeline, error)
	ListStagesFunc func(ctx context.Context, pipelineID uuid.UUID) ([]domain.Stage, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListStages []struct {
			Ctx        context.Context
			PipelineID uuid.UUID
		}
	}
	lockGetByID    sync.RWMutex
	lockListStages sync.RWMutex
}

func (mock *pipelineRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Pipeline, error) {
	if mock.GetByIDFunc == nil {
		panic("pipelineRepoMock.GetByIDFunc: method is nil but pipelineRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *pipelineRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockGetByID.RLock()
	calls = mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *pipelineRepoMock) ListStages(ctx context.Context, pipelineID uuid.UUID) ([]domain.Stage, error) {
	if mock.ListStagesFunc == nil {
		panic("pipelineRepoMock.ListStagesFunc: method is nil but pipelineRepo.ListStages was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		PipelineID uuid.UUID
	}{
		Ctx:        ctx,
		PipelineID: pipelineID,
	}
	mock.lockListStages.Lock()
	mock.calls.ListStages = append(mock.calls.ListStages, callInfo)
	mock.lockListStages.Unlock()
	return mock.ListStagesFunc(ctx, pipelineID)
}

func (mock *pipelineRepoMock) ListStagesCalls() []struct {
	Ctx        context.Context
	PipelineID uuid.UUID
} {
	var calls []struct {
		Ctx        context.Context
		PipelineID uuid.UUID
	}
	mock.lockListStages.RLock()
	calls = mock.calls.ListStages
	mock.lockListStages.RUnlock()
	return calls
}
