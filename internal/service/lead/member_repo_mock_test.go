package lead

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/victorazesc/appseed-sub000/internal/domain"
)

var _ memberRepo = &memberRepoMock{}

type memberRepoMock struct {
	RoleFunc func(ctx context.Context, workspaceID uuid.UUID, userID uuid.UUID) (domain.Role, error)

	calls struct {
		Role []struct {
			Ctx         context.Context
			WorkspaceID uuid.UUID
			UserID      uuid.UUID
		}
	}
	lockRole sync.RWMutex
}

func (mock *memberRepoMock) Role(ctx context.Context, workspaceID uuid.UUID, userID uuid.UUID) (domain.Role, error) {
	if mock.RoleFunc == nil {
		panic("memberRepoMock.RoleFunc: method is nil but memberRepo.Role was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		WorkspaceID uuid.UUID
		UserID      uuid.UUID
	}{
		Ctx:         ctx,
		WorkspaceID: workspaceID,
		UserID:      userID,
	}
	mock.lockRole.Lock()
	mock.calls.Role = append(mock.calls.Role, callInfo)
	mock.lockRole.Unlock()
	return mock.RoleFunc(ctx, workspaceID, userID)
}

func (mock *memberRepoMock) RoleCalls() []struct {
	Ctx         context.Context
	WorkspaceID uuid.UUID
	UserID      uuid.UUID
} {
	var calls []struct {
		Ctx         context.Context
		WorkspaceID uuid.UUID
		UserID      uuid.UUID
	}
	mock.lockRole.RLock()
	calls = mock.calls.Role
	mock.lockRole.RUnlock()
	return calls
}
