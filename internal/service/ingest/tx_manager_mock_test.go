package ingest

import (
	"context"
	"sync"
)

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc             func(ctx context.Context, fn func(ctx context.Context) error) error
	RunInTxSerializableFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
		RunInTxSerializable []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
	}
	lockRunInTx             sync.RWMutex
	lockRunInTxSerializable sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{
		Ctx: ctx,
		Fn:  fn,
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	var calls []struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}
	mock.lockRunInTx.RLock()
	calls = mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}

func (mock *txManagerMock) RunInTxSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxSerializableFunc == nil {
		panic("txManagerMock.RunInTxSerializableFunc: method is nil but txManager.RunInTxSerializable was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{
		Ctx: ctx,
		Fn:  fn,
	}
	mock.lockRunInTxSerializable.Lock()
	mock.calls.RunInTxSerializable = append(mock.calls.RunInTxSerializable, callInfo)
	mock.lockRunInTxSerializable.Unlock()
	return mock.RunInTxSerializableFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxSerializableCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	var calls []struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}
	mock.lockRunInTxSerializable.RLock()
	calls = mock.calls.RunInTxSerializable
	mock.lockRunInTxSerializable.RUnlock()
	return calls
}
