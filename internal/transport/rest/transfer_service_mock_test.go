package rest

import (
	"context"
	"sync"

	"github.com/victorazesc/appseed-sub000/internal/service/transfer"
)

var _ transferService = &transferServiceMock{}

type transferServiceMock struct {
	TransferFunc func(ctx context.Context, input transfer.Input) (transfer.Result, error)

	calls struct {
		Transfer []struct {
			Ctx   context.Context
			Input transfer.Input
		}
	}
	lockTransfer sync.RWMutex
}

func (mock *transferServiceMock) Transfer(ctx context.Context, input transfer.Input) (transfer.Result, error) {
	if mock.TransferFunc == nil {
		panic("transferServiceMock.TransferFunc: method is nil but transferService.Transfer was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input transfer.Input
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockTransfer.Lock()
	mock.calls.Transfer = append(mock.calls.Transfer, callInfo)
	mock.lockTransfer.Unlock()
	return mock.TransferFunc(ctx, input)
}

func (mock *transferServiceMock) TransferCalls() []struct {
	Ctx   context.Context
	Input transfer.Input
} {
	var calls []struct {
		Ctx   context.Context
		Input transfer.Input
	}
	mock.lockTransfer.RLock()
	calls = mock.calls.Transfer
	mock.lockTransfer.RUnlock()
	return calls
}
