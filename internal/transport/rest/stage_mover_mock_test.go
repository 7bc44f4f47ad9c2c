package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/victorazesc/appseed-sub000/internal/service/transition"
)

var _ stageMover = &stageMoverMock{}

type stageMoverMock struct {
	MoveStageFunc func(ctx context.Context, leadID uuid.UUID, stageID uuid.UUID) (transition.MoveResult, error)

	calls struct {
		MoveStage []struct {
			Ctx     context.Context
			LeadID  uuid.UUID
			StageID uuid.UUID
		}
	}
	lockMoveStage sync.RWMutex
}

func (mock *stageMoverMock) MoveStage(ctx context.Context, leadID uuid.UUID, stageID uuid.UUID) (transition.MoveResult, error) {
	if mock.MoveStageFunc == nil {
		panic("stageMoverMock.MoveStageFunc: method is nil but stageMover.MoveStage was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		LeadID  uuid.UUID
		StageID uuid.UUID
	}{
		Ctx:     ctx,
		LeadID:  leadID,
		StageID: stageID,
	}
	mock.lockMoveStage.Lock()
	mock.calls.MoveStage = append(mock.calls.MoveStage, callInfo)
	mock.lockMoveStage.Unlock()
	return mock.MoveStageFunc(ctx, leadID, stageID)
}

func (mock *stageMoverMock) MoveStageCalls() []struct {
	Ctx     context.Context
	LeadID  uuid.UUID
	StageID uuid.UUID
} {
	var calls []struct {
		Ctx     context.Context
		LeadID  uuid.UUID
		StageID uuid.UUID
	}
	mock.lockMoveStage.RLock()
	calls = mock.calls.MoveStage
	mock.lockMoveStage.RUnlock()
	return calls
}
