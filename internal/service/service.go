package service

import (
	"context"

	"webinar-token-service/internal/domain"
)

// TokenIssuer is the upstream Token Issuing Service.
type TokenIssuer interface {
	CreateMeetingToken(ctx context.Context, req domain.TokenRequest) (*domain.TokenResult, error)
}

type TokenService interface {
	// IssueAdminToken validates input and requests an owner token. Errors are
	// *domain.TokenError.
	IssueAdminToken(ctx context.Context, in domain.FormInput) (*domain.IssuedToken, *domain.TokenResult, error)
	// Link builds the redemption link for a room and token.
	Link(roomName, token string) string
}
