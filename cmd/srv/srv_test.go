package main

import (
	"strings"
	"testing"

	"github.com/lotopool/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_srv_loadConfig_defaultProviderBaseURL(t *testing.T) {
	t.Setenv("LOTERIA_BASE_URL", "")

	s := &srv{}
	s.loadConfig()

	// The client appends /api/{type}/{draw} to the base itself.
	baseURL := xcontext.Configs(s.ctx).Loteria.BaseURL
	require.NotEmpty(t, baseURL)
	require.False(t, strings.HasSuffix(baseURL, "/api"))
}
