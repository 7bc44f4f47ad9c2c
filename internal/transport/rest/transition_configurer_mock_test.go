package rest

import (
	"context"
	"sync"

	"github.com/victorazesc/appseed-sub000/internal/domain"
	"github.com/victorazesc/appseed-sub000/internal/service/transition"
)

var _ transitionConfigurer = &transitionConfigurerMock{}

type transitionConfigurerMock struct {
	ConfigureTransitionFunc func(ctx context.Context, input transition.ConfigInput) (domain.Stage, error)

	calls struct {
		ConfigureTransition []struct {
			Ctx   context.Context
			Input transition.ConfigInput
		}
	}
	lockConfigureTransition sync.RWMutex
}

func (mock *transitionConfigurerMock) ConfigureTransition(ctx context.Context, input transition.ConfigInput) (domain.Stage, error) {
	if mock.ConfigureTransitionFunc == nil {
		panic("transitionConfigurerMock.ConfigureTransitionFunc: method is nil but transitionConfigurer.ConfigureTransition was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input transition.ConfigInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockConfigureTransition.Lock()
	mock.calls.ConfigureTransition = append(mock.calls.ConfigureTransition, callInfo)
	mock.lockConfigureTransition.Unlock()
	return mock.ConfigureTransitionFunc(ctx, input)
}

func (mock *transitionConfigurerMock) ConfigureTransitionCalls() []struct {
	Ctx   context.Context
	Input transition.ConfigInput
} {
	var calls []struct {
		Ctx   context.Context
		Input transition.ConfigInput
	}
	mock.lockConfigureTransition.RLock()
	calls = mock.calls.ConfigureTransition
	mock.lockConfigureTransition.RUnlock()
	return calls
}
