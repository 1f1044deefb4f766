package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserAgentProviderDeterministicWithSeed(t *testing.T) {
	a := NewUserAgentProvider(42)
	b := NewUserAgentProvider(42)

	for i := 0; i < 10; i++ {
		require.Equal(t, a(), b())
	}
}

func TestUserAgentProviderReturnsPoolMembers(t *testing.T) {
	provider := NewUserAgentProvider(7)
	pool := make(map[string]bool, len(userAgents))
	for _, ua := range userAgents {
		pool[ua] = true
	}
	for i := 0; i < 20; i++ {
		require.True(t, pool[provider()])
	}
}
