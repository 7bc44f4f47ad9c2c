package lead

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/victorazesc/appseed-sub000/internal/domain"
)

var _ activityRepo = &activityRepoMock{}

type activityRepoMock struct {
	ListByLeadFunc func(ctx context.Context, leadID uuid.UUID) ([]domain.Activity, error)

	calls struct {
		ListByLead []struct {
			Ctx    context.Context
			LeadID uuid.UUID
		}
	}
	lockListByLead sync.RWMutex
}

func (mock *activityRepoMock) ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.Activity, error) {
	if mock.ListByLeadFunc == nil {
		panic("activityRepoMock.ListByLeadFunc: method is nil but activityRepo.ListByLead was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		LeadID uuid.UUID
	}{
		Ctx:    ctx,
		LeadID: leadID,
	}
	mock.lockListByLead.Lock()
	mock.calls.ListByLead = append(mock.calls.ListByLead, callInfo)
	mock.lockListByLead.Unlock()
	return mock.ListByLeadFunc(ctx, leadID)
}

func (mock *activityRepoMock) ListByLeadCalls() []struct {
	Ctx    context.Context
	LeadID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		LeadID uuid.UUID
	}
	mock.lockListByLead.RLock()
	calls = mock.calls.ListByLead
	mock.lockListByLead.RUnlock()
	return calls
}
