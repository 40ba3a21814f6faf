// Package visibility decides how much of a deal a viewer may see and applies
// the matching redaction.
//
// Evaluate and Anonymize are pure. Gate composes them with the deal and
// registration lookups and is the entry point every deal-reading path uses.
package visibility

import (
	dealModels "github.com/nraford7/matchmaker-gem-68-sub000/internal/deal/models"
	regModels "github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/models"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
)

// AccessDecision is the outcome of policy evaluation for one viewer and deal.
// Status carries the viewer's registration status when one exists.
type AccessDecision struct {
	HasAccess bool              `json:"has_access"`
	Status    *regModels.Status `json:"status"`
}

// Evaluate applies the tier rules in order; the first match wins:
//  1. OPEN deals are visible to everyone.
//  2. The uploader always sees their own deal.
//  3. CONFIDENTIAL deals are visible once any registration exists.
//  4. INVITATION_ONLY deals are visible once the registration is APPROVED.
//  5. Everything else is denied.
//
// reg must belong to (viewer, deal) or be nil. Unknown tiers fall through to
// the deny rule.
func Evaluate(deal *dealModels.Deal, viewer id.UserID, reg *regModels.Registration) AccessDecision {
	var status *regModels.Status
	if reg != nil {
		s := reg.Status
		status = &s
	}
	if deal == nil {
		return AccessDecision{Status: status}
	}

	level := deal.Level()
	switch {
	case level == id.PrivacyOpen:
		return AccessDecision{HasAccess: true, Status: status}
	case deal.IsOwnedBy(viewer):
		return AccessDecision{HasAccess: true, Status: status}
	case level == id.PrivacyConfidential && reg != nil:
		return AccessDecision{HasAccess: true, Status: status}
	case level == id.PrivacyInvitationOnly && reg != nil && reg.Status == regModels.StatusApproved:
		return AccessDecision{HasAccess: true, Status: status}
	}
	return AccessDecision{HasAccess: false, Status: status}
}

// needsRegistration reports whether Evaluate could depend on a registration
// for this viewer. OPEN deals and the owner's own deals never do.
func needsRegistration(deal *dealModels.Deal, viewer id.UserID) bool {
	return deal.Level() != id.PrivacyOpen && !deal.IsOwnedBy(viewer)
}
