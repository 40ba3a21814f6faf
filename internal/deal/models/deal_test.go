package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
)

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t,
		[]string{"Fintech", "Climate"},
		NormalizeTags([]string{"  Fintech ", "fintech", "", "Climate", "  "}),
	)
	assert.Empty(t, NormalizeTags(nil))
}

func TestClone_IsDeep(t *testing.T) {
	owner := id.UserID(uuid.New())
	irr := 0.18
	size := int64(2_500_000)
	d := &Deal{
		ID:                id.DealID(uuid.New()),
		UploaderID:        &owner,
		IRR:               &irr,
		CheckSizeRequired: &size,
		SectorTags:        []string{"Fintech"},
	}

	c := d.Clone()
	*c.IRR = 0.5
	*c.CheckSizeRequired = 1
	c.SectorTags[0] = "Changed"

	assert.Equal(t, 0.18, *d.IRR)
	assert.Equal(t, int64(2_500_000), *d.CheckSizeRequired)
	assert.Equal(t, "Fintech", d.SectorTags[0])
	assert.Nil(t, (*Deal)(nil).Clone())
}

func TestIsOwnedBy(t *testing.T) {
	owner := id.UserID(uuid.New())
	d := &Deal{UploaderID: &owner}

	assert.True(t, d.IsOwnedBy(owner))
	assert.False(t, d.IsOwnedBy(id.UserID(uuid.New())))
	assert.False(t, d.IsOwnedBy(id.UserID{}))
	assert.False(t, (&Deal{}).IsOwnedBy(owner), "legacy deals have no owner")
}
