package visibility

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	dealModels "github.com/nraford7/matchmaker-gem-68-sub000/internal/deal/models"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
)

const (
	genericName          = "Confidential Opportunity"
	callToAction         = "Register your interest to view full details."
	genericDescription   = "Details of this opportunity are confidential."
	invitationOnlyNotice = "This is an invitation-only opportunity. Details are shared with approved investors once the owner accepts your registration."

	maxTeaserRunes = 100
	checkSizeUnit  = 1_000_000
)

// Anonymize returns a redacted copy of deal for the given tier. The input is
// never modified. Redaction is stable: anonymizing an anonymized deal again
// under the same tier returns an equal deal.
//
// Gated fields receive placeholder content rather than being blanked, so an
// empty field cannot be told apart from a gated one. Sector and geography
// tags are category-level and are kept; the placeholder name is derived from
// them. Unknown tiers are redacted as INVITATION_ONLY.
func Anonymize(deal *dealModels.Deal, level id.PrivacyLevel) *dealModels.Deal {
	if deal == nil {
		return nil
	}
	out := deal.Clone()
	if level.Normalize() == id.PrivacyOpen {
		return out
	}

	out.SectorTags = dealModels.NormalizeTags(out.SectorTags)
	out.GeographyTags = dealModels.NormalizeTags(out.GeographyTags)
	if level.Normalize() == id.PrivacyConfidential {
		out.Name = placeholderName(out)
		out.Description = teaserDescription(out.Description)
		return out
	}

	out.Name = placeholderName(out)
	out.Description = invitationOnlyNotice
	out.IRR = nil
	out.TimeHorizon = ""
	out.Location = generalizeLocation(out.Location)
	if out.CheckSizeRequired != nil {
		rounded := roundToMillion(*out.CheckSizeRequired)
		out.CheckSizeRequired = &rounded
	}
	return out
}

// placeholderName prefers "{sector} Company", then "{word1} in {word2}", then
// the generic name. "in" is skipped when picking words so an already
// anonymized name maps to itself.
func placeholderName(deal *dealModels.Deal) string {
	if len(deal.SectorTags) > 0 {
		return deal.SectorTags[0] + " Company"
	}
	name := strings.TrimSpace(deal.Name)
	if name == genericName {
		return genericName
	}
	var words []string
	for _, w := range strings.Fields(name) {
		if strings.EqualFold(w, "in") {
			continue
		}
		words = append(words, w)
		if len(words) == 2 {
			return words[0] + " in " + words[1]
		}
	}
	return genericName
}

// teaserDescription keeps the first sentence, capped at maxTeaserRunes, and
// appends the call to action.
func teaserDescription(description string) string {
	text := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(description), callToAction))
	if text == "" {
		text = genericDescription
	}
	sentence := firstSentence(text)
	if utf8.RuneCountInString(sentence) > maxTeaserRunes {
		runes := []rune(sentence)
		sentence = strings.TrimRightFunc(string(runes[:maxTeaserRunes]), unicode.IsSpace) + "…"
	}
	return sentence + " " + callToAction
}

// firstSentence returns text up to and including the first '.', '!' or '?'
// that ends the text or is followed by whitespace.
func firstSentence(text string) string {
	runes := []rune(text)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i == len(runes)-1 || unicode.IsSpace(runes[i+1]) {
			return string(runes[:i+1])
		}
	}
	return text
}

// generalizeLocation keeps only the last comma-separated segment,
// e.g. "Berlin, Germany" becomes "Germany".
func generalizeLocation(location string) string {
	if i := strings.LastIndex(location, ","); i >= 0 {
		return strings.TrimSpace(location[i+1:])
	}
	return strings.TrimSpace(location)
}

func roundToMillion(amount int64) int64 {
	return int64(math.Round(float64(amount)/checkSizeUnit)) * checkSizeUnit
}
