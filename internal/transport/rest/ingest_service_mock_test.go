package rest

import (
	"context"
	"sync"

	"github.com/victorazesc/appseed-sub000/internal/service/ingest"
)

var _ ingestService = &ingestServiceMock{}

type ingestServiceMock struct {
	IngestFunc func(ctx context.Context, req ingest.Request) (ingest.Result, error)

	calls struct {
		Ingest []struct {
			Ctx context.Context
			Req ingest.Request
		}
	}
	lockIngest sync.RWMutex
}

func (mock *ingestServiceMock) Ingest(ctx context.Context, req ingest.Request) (ingest.Result, error) {
	if mock.IngestFunc == nil {
		panic("ingestServiceMock.IngestFunc: method is nil but ingestService.Ingest was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req ingest.Request
	}{
		Ctx: ctx,
		Req: req,
	}
	mock.lockIngest.Lock()
	mock.calls.Ingest = append(mock.calls.Ingest, callInfo)
	mock.lockIngest.Unlock()
	return mock.IngestFunc(ctx, req)
}

func (mock *ingestServiceMock) IngestCalls() []struct {
	Ctx context.Context
	Req ingest.Request
} {
	var calls []struct {
		Ctx context.Context
		Req ingest.Request
	}
	mock.lockIngest.RLock()
	calls = mock.calls.Ingest
	mock.lockIngest.RUnlock()
	return calls
}
