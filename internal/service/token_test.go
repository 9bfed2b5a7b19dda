package service

import (
	"context"
	"errors"
	"testing"

	"webinar-token-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const discoverBase = "https://discover.daily.co"

func TestTokenService_IssueAdminToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		issuer := new(MockTokenIssuer)
		svc := NewTokenService(issuer, discoverBase)

		issuer.On("CreateMeetingToken", ctx, mock.MatchedBy(func(req domain.TokenRequest) bool {
			return req.Properties.IsOwner && req.Properties.RoomName == "room1" && req.Properties.UserName == "alice"
		})).Return(&domain.TokenResult{Token: "abc"}, nil)

		issued, result, err := svc.IssueAdminToken(ctx, domain.FormInput{RoomName: "room1", Username: "alice"})
		require.NoError(t, err)
		assert.Equal(t, "abc", result.Token)
		assert.Equal(t, "https://discover.daily.co/room1?t=abc", issued.Link)
		assert.Equal(t, "alice", issued.Username)
		assert.Equal(t, "room1", issued.RoomName)
		issuer.AssertExpectations(t)
	})

	t.Run("Missing input never calls the service", func(t *testing.T) {
		inputs := []domain.FormInput{
			{RoomName: "", Username: "alice"},
			{RoomName: "room1", Username: ""},
			{},
		}
		for _, in := range inputs {
			issuer := new(MockTokenIssuer)
			svc := NewTokenService(issuer, discoverBase)

			_, _, err := svc.IssueAdminToken(ctx, in)
			require.Error(t, err)
			assert.True(t, domain.IsValidationError(err))
			assert.Equal(t, domain.MessageMissingInput, domain.UserMessage(err))
			issuer.AssertNotCalled(t, "CreateMeetingToken", mock.Anything, mock.Anything)
		}
	})

	t.Run("Whitespace passes the check", func(t *testing.T) {
		issuer := new(MockTokenIssuer)
		svc := NewTokenService(issuer, discoverBase)
		issuer.On("CreateMeetingToken", ctx, mock.Anything).Return(&domain.TokenResult{Token: "t"}, nil)

		_, _, err := svc.IssueAdminToken(ctx, domain.FormInput{RoomName: " ", Username: " "})
		assert.NoError(t, err)
		issuer.AssertNumberOfCalls(t, "CreateMeetingToken", 1)
	})

	t.Run("Service error passes through", func(t *testing.T) {
		issuer := new(MockTokenIssuer)
		svc := NewTokenService(issuer, discoverBase)
		issuer.On("CreateMeetingToken", ctx, mock.Anything).
			Return(nil, domain.NewServiceError("invalid-request", "bad room"))

		_, _, err := svc.IssueAdminToken(ctx, domain.FormInput{RoomName: "room1", Username: "alice"})
		assert.True(t, domain.IsServiceError(err))
		assert.Equal(t, "invalid-request: bad room", domain.UserMessage(err))
	})

	t.Run("Unclassified error becomes transport", func(t *testing.T) {
		issuer := new(MockTokenIssuer)
		svc := NewTokenService(issuer, discoverBase)
		cause := errors.New("dial tcp: refused")
		issuer.On("CreateMeetingToken", ctx, mock.Anything).Return(nil, cause)

		_, _, err := svc.IssueAdminToken(ctx, domain.FormInput{RoomName: "room1", Username: "alice"})
		assert.True(t, domain.IsTransportError(err))
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, domain.MessageTryAgain, domain.UserMessage(err))
	})
}
