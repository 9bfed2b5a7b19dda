package service

import (
	"context"

	"webinar-token-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockTokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) CreateMeetingToken(ctx context.Context, req domain.TokenRequest) (*domain.TokenResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenResult), args.Error(1)
}

// blockingIssuer parks every call until release is closed or ctx ends.
type blockingIssuer struct {
	started chan struct{}
	release chan struct{}
	result  *domain.TokenResult
	calls   int
}

func newBlockingIssuer(token string) *blockingIssuer {
	return &blockingIssuer{
		started: make(chan struct{}, 8),
		release: make(chan struct{}),
		result:  &domain.TokenResult{Token: token},
	}
}

func (b *blockingIssuer) CreateMeetingToken(ctx context.Context, req domain.TokenRequest) (*domain.TokenResult, error) {
	b.calls++
	b.started <- struct{}{}
	select {
	case <-b.release:
		return b.result, nil
	case <-ctx.Done():
		return nil, domain.NewTransportError(ctx.Err())
	}
}
