package ingest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/victorazesc/appseed-sub000/internal/domain"
)

var _ pipelineRepo = &pipelineRepoMock{}

type pipelineRepoMock struct {
	GetByWebhookRefFunc func(ctx context.Context, ref domain.PipelineRef) (domain.Pipeline, error)
	ListStagesFunc      func(ctx context.Context, pipelineID uuid.UUID) ([]domain.Stage, error)

	calls struct {
		GetByWebhookRef []struct {
			Ctx context.Context
			Ref domain.PipelineRef
		}
		ListStages []struct {
			Ctx        context.Context
			PipelineID uuid.UUID
		}
	}
	lockGetByWebhookRef sync.RWMutex
	lockListStages      sync.RWMutex
}

func (mock *pipelineRepoMock) GetByWebhookRef(ctx context.Context, ref domain.PipelineRef) (domain.Pipeline, error) {
	if mock.GetByWebhookRefFunc == nil {
		panic("pipelineRepoMock.GetByWebhookRefFunc: method is nil but pipelineRepo.GetByWebhookRef was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ref domain.PipelineRef
	}{
		Ctx: ctx,
		Ref: ref,
	}
	mock.lockGetByWebhookRef.Lock()
	mock.calls.GetByWebhookRef = append(mock.calls.GetByWebhookRef, callInfo)
	mock.lockGetByWebhookRef.Unlock()
	return mock.GetByWebhookRefFunc(ctx, ref)
}

func (mock *pipelineRepoMock) GetByWebhookRefCalls() []struct {
	Ctx context.Context
	Ref domain.PipelineRef
} {
	var calls []struct {
		Ctx context.Context
		Ref domain.PipelineRef
	}
	mock.lockGetByWebhookRef.RLock()
	calls = mock.calls.GetByWebhookRef
	mock.lockGetByWebhookRef.RUnlock()
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
