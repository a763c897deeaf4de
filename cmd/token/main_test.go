package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtmw "vision_backend/internal/platform/jwt"
)

var testCfg = jwtmw.Config{Secret: "cli-secret", Issuer: jwtmw.DefaultIssuer}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-client", "batch-worker", "-scope", "vision, history", "-ttl", "1h"}, &out, testCfg)
	require.NoError(t, err)

	claims := &jwtmw.Claims{}
	_, err = jwt.ParseWithClaims(strings.TrimSpace(out.String()), claims, func(*jwt.Token) (any, error) {
		return []byte(testCfg.Secret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "batch-worker", claims.Subject)
	assert.Equal(t, "vision history", claims.Scope)
	assert.True(t, claims.HasScope(jwtmw.ScopeVision))
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		cfg  jwtmw.Config
	}{
		{"missing client", nil, testCfg},
		{"non-positive ttl", []string{"-client", "c", "-ttl", "0s"}, testCfg},
		{"bad ttl", []string{"-client", "c", "-ttl", "soon"}, testCfg},
		{"missing secret", []string{"-client", "c"}, jwtmw.Config{Issuer: jwtmw.DefaultIssuer}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Error(t, run(tt.args, &out, tt.cfg))
			assert.Empty(t, out.String())
		})
	}
}
