package service

import (
	"context"
	"errors"

	"webinar-token-service/internal/domain"
	"webinar-token-service/internal/logger"
)

type tokenService struct {
	issuer       TokenIssuer
	discoverBase string
}

func NewTokenService(issuer TokenIssuer, discoverBase string) TokenService {
	return &tokenService{
		issuer:       issuer,
		discoverBase: discoverBase,
	}
}

func (s *tokenService) IssueAdminToken(ctx context.Context, in domain.FormInput) (*domain.IssuedToken, *domain.TokenResult, error) {
	logger.EnterMethod("tokenService.IssueAdminToken", "room", in.RoomName, "user", in.Username)

	if !in.Complete() {
		err := domain.NewValidationError()
		logger.ExitMethod("tokenService.IssueAdminToken", "reason", "missing input")
		return nil, nil, err
	}

	result, err := s.issuer.CreateMeetingToken(ctx, domain.NewAdminTokenRequest(in))
	if err != nil {
		// Anything the issuer returns that is not already classified is a
		// transport failure.
		var te *domain.TokenError
		if !errors.As(err, &te) {
			err = domain.NewTransportError(err)
		}
		logger.ExitMethod("tokenService.IssueAdminToken", "room", in.RoomName, "kind", domain.KindOf(err))
		return nil, nil, err
	}

	issued := &domain.IssuedToken{
		Token:    result.Token,
		Link:     s.Link(in.RoomName, result.Token),
		RoomName: in.RoomName,
		Username: in.Username,
	}
	logger.ExitMethod("tokenService.IssueAdminToken", "room", in.RoomName)
	return issued, result, nil
}

func (s *tokenService) Link(roomName, token string) string {
	return domain.RedemptionLink(s.discoverBase, roomName, token)
}
