package models

import (
	"strings"
	"time"

	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
)

// Deal is an investment opportunity as served to viewers.
//
// Gated fields: Name, Description, IRR, TimeHorizon, Location,
// CheckSizeRequired, SectorTags, GeographyTags. Everything else (ID, Stage,
// timestamps) is shown to every viewer.
//
// Assumption: PrivacyLevel does not change once other viewers have registered
// against the deal. The deal-editing collaborator may still allow edits; stored
// registrations are then interpreted against the current level.
type Deal struct {
	ID           id.DealID       `json:"id"`
	UploaderID   *id.UserID      `json:"uploader_id,omitempty"`
	PrivacyLevel id.PrivacyLevel `json:"privacy_level"`
	Stage        string          `json:"stage,omitempty"`

	Name              string   `json:"name"`
	Description       string   `json:"description"`
	IRR               *float64 `json:"irr,omitempty"`
	TimeHorizon       string   `json:"time_horizon,omitempty"`
	Location          string   `json:"location"`
	CheckSizeRequired *int64   `json:"check_size_required,omitempty"`
	SectorTags        []string `json:"sector_tags"`
	GeographyTags     []string `json:"geography_tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Level returns the deal's tier with the unset value read as OPEN.
func (d *Deal) Level() id.PrivacyLevel {
	return d.PrivacyLevel.Normalize()
}

// IsOwnedBy reports whether viewer uploaded the deal. Legacy deals without an
// uploader are owned by nobody.
func (d *Deal) IsOwnedBy(viewer id.UserID) bool {
	if d.UploaderID == nil || viewer.IsNil() {
		return false
	}
	return *d.UploaderID == viewer
}

// Clone returns a deep copy so callers can redact without touching the
// original.
func (d *Deal) Clone() *Deal {
	if d == nil {
		return nil
	}
	c := *d
	if d.UploaderID != nil {
		u := *d.UploaderID
		c.UploaderID = &u
	}
	if d.IRR != nil {
		v := *d.IRR
		c.IRR = &v
	}
	if d.CheckSizeRequired != nil {
		v := *d.CheckSizeRequired
		c.CheckSizeRequired = &v
	}
	c.SectorTags = append([]string(nil), d.SectorTags...)
	c.GeographyTags = append([]string(nil), d.GeographyTags...)
	return &c
}

// NormalizeTags trims tags and drops empties and case-insensitive duplicates,
// keeping the first spelling and the original order.
func NormalizeTags(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
