package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nraford7/matchmaker-gem-68-sub000/internal/deal/models"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
)

// SeedDemoDeals stores one deal per privacy tier, all uploaded by owner, for
// local runs without PostgreSQL.
func SeedDemoDeals(s *InMemory, owner id.UserID) []*models.Deal {
	now := time.Now().UTC()
	irr := 0.22
	checkSize := int64(4_400_000)

	deals := []*models.Deal{
		{
			ID:           id.DealID(uuid.New()),
			UploaderID:   &owner,
			PrivacyLevel: id.PrivacyOpen,
			Stage:        "Seed",
			Name:         "Harbor Analytics",
			Description:  "Port logistics telemetry for mid-size operators. Raising a seed extension.",
			Location:     "Rotterdam, Netherlands",
			SectorTags:   []string{"Logistics"},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           id.DealID(uuid.New()),
			UploaderID:   &owner,
			PrivacyLevel: id.PrivacyConfidential,
			Stage:        "Series A",
			Name:         "Verdant Grid Storage",
			Description:  "Grid-scale sodium battery deployments across three utilities. Revenue-generating since 2024.",
			IRR:          &irr,
			TimeHorizon:  "5-7 years",
			Location:     "Austin, Texas, USA",
			SectorTags:   []string{"Climate", "Energy"},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:                id.DealID(uuid.New()),
			UploaderID:        &owner,
			PrivacyLevel:      id.PrivacyInvitationOnly,
			Stage:             "Growth",
			Name:              "Northwind Payments",
			Description:       "Cross-border B2B payments rail with licensed entities in the EU. Profitable.",
			IRR:               &irr,
			TimeHorizon:       "3-5 years",
			Location:          "Berlin, Germany",
			CheckSizeRequired: &checkSize,
			SectorTags:        []string{"Fintech"},
			GeographyTags:     []string{"EU"},
			CreatedAt:         now,
			UpdatedAt:         now,
		},
	}
	for _, d := range deals {
		_ = s.Save(context.Background(), d)
	}
	return deals
}
