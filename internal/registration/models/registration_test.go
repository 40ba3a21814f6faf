package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	dErrors "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain-errors"
)

func TestInitialStatusFor(t *testing.T) {
	cases := map[id.PrivacyLevel]Status{
		id.PrivacyOpen:           StatusApproved,
		"":                       StatusApproved,
		id.PrivacyConfidential:   StatusApproved,
		id.PrivacyInvitationOnly: StatusRegistered,
	}
	for level, want := range cases {
		assert.Equal(t, want, InitialStatusFor(level), "level %q", level)
	}
}

func TestStatusTransitions(t *testing.T) {
	all := []Status{StatusRegistered, StatusApproved, StatusRejected}
	for _, from := range all {
		for _, to := range all {
			allowed := from == StatusRegistered && to != StatusRegistered
			assert.Equal(t, allowed, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, StatusRegistered.IsTerminal())
}

func TestNewRegistration(t *testing.T) {
	now := time.Now()
	t.Run("requires viewer", func(t *testing.T) {
		_, err := NewRegistration(id.NewRegistrationID(), id.UserID{}, id.DealID(uuid.New()), id.PrivacyConfidential, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})

	t.Run("starts pending for invitation-only deals", func(t *testing.T) {
		reg, err := NewRegistration(id.NewRegistrationID(), id.UserID(uuid.New()), id.DealID(uuid.New()), id.PrivacyInvitationOnly, now)
		require.NoError(t, err)
		assert.Equal(t, StatusRegistered, reg.Status)
		assert.Equal(t, now, reg.CreatedAt)
		assert.Equal(t, now, reg.UpdatedAt)
	})

	t.Run("terminal records refuse transitions", func(t *testing.T) {
		reg := &Registration{Status: StatusRejected}
		err := reg.CanTransitionTo(StatusApproved)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	})
}
