package domain

import dErrors "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain-errors"

// PrivacyLevel is the confidentiality tier of a deal.
// Invariant: after Normalize the value is one of the three supported tiers.
//
// Usage: construct via ParsePrivacyLevel at trust boundaries; stored values
// that are empty are read as OPEN.
type PrivacyLevel string

const (
	PrivacyOpen           PrivacyLevel = "OPEN"
	PrivacyConfidential   PrivacyLevel = "CONFIDENTIAL"
	PrivacyInvitationOnly PrivacyLevel = "INVITATION_ONLY"
)

// privacyRank orders tiers from least to most restrictive.
var privacyRank = map[PrivacyLevel]int{
	PrivacyOpen:           0,
	PrivacyConfidential:   1,
	PrivacyInvitationOnly: 2,
}

// ParsePrivacyLevel constructs a PrivacyLevel from external input.
// An empty string yields OPEN.
//
// Errors: returns CodeInvalidInput for unsupported values.
func ParsePrivacyLevel(s string) (PrivacyLevel, error) {
	if s == "" {
		return PrivacyOpen, nil
	}
	p := PrivacyLevel(s)
	if !p.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid privacy level")
	}
	return p, nil
}

// IsValid reports whether the level is one of the supported tiers.
func (p PrivacyLevel) IsValid() bool {
	_, ok := privacyRank[p]
	return ok
}

// Normalize maps the unset level to OPEN. Unknown values are kept so callers
// can still see them; Evaluate treats them as the most restrictive tier.
func (p PrivacyLevel) Normalize() PrivacyLevel {
	if p == "" {
		return PrivacyOpen
	}
	return p
}

// IsGated reports whether the tier hides any field from non-privileged viewers.
func (p PrivacyLevel) IsGated() bool {
	return p.Normalize() != PrivacyOpen
}

// Rank returns 0 for OPEN up to 2 for INVITATION_ONLY. Unknown values rank as
// most restrictive.
func (p PrivacyLevel) Rank() int {
	if r, ok := privacyRank[p.Normalize()]; ok {
		return r
	}
	return privacyRank[PrivacyInvitationOnly]
}

func (p PrivacyLevel) String() string {
	return string(p)
}
