package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	names := MigrationNames()
	require.NotEmpty(t, names)

	body, err := migrations.ReadFile(names[0])
	require.NoError(t, err)
	sql := string(body)
	for _, table := range []string{"deals", "deal_registrations", "directory_users"} {
		assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.True(t, strings.Contains(sql, "UNIQUE (user_id, deal_id)"), "one registration per viewer and deal")
}
