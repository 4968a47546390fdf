package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	c, err := NewClient(context.Background(), "", "")
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}
