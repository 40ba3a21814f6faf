package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain-errors"
)

func TestParsePrivacyLevel(t *testing.T) {
	tests := []struct {
		input string
		want  PrivacyLevel
	}{
		{"", PrivacyOpen},
		{"OPEN", PrivacyOpen},
		{"CONFIDENTIAL", PrivacyConfidential},
		{"INVITATION_ONLY", PrivacyInvitationOnly},
	}
	for _, tt := range tests {
		got, err := ParsePrivacyLevel(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParsePrivacyLevel("secret")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestPrivacyLevelRank(t *testing.T) {
	assert.Less(t, PrivacyOpen.Rank(), PrivacyConfidential.Rank())
	assert.Less(t, PrivacyConfidential.Rank(), PrivacyInvitationOnly.Rank())
	assert.Equal(t, PrivacyOpen.Rank(), PrivacyLevel("").Rank())
	assert.Equal(t, PrivacyInvitationOnly.Rank(), PrivacyLevel("bogus").Rank())
	assert.False(t, PrivacyLevel("").IsGated())
	assert.True(t, PrivacyConfidential.IsGated())
}
