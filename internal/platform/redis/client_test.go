package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nraford7/matchmaker-gem-68-sub000/internal/platform/config"
)

func TestNew_DisabledReturnsNil(t *testing.T) {
	client, err := New(context.Background(), config.Redis{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNew_BadURL(t *testing.T) {
	_, err := New(context.Background(), config.Redis{URL: "://not-a-url"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis URL")
}
