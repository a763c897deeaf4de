// Package jwtmw はAPIクライアント向けJWTの発行とginの認証ミドルウェアを提供します。
package jwtmw

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims はAPIトークンのクレームです。scopeはスペース区切りです。
type Claims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// HasScope はscopeに指定のスコープが含まれるかを返します。
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(strings.Fields(c.Scope), scope)
}

// Generator はJWT発行のインターフェースです。
type Generator interface {
	// GenerateToken はクライアントIDとスコープを持つ署名済みトークンを生成します。
	GenerateToken(clientID string, scopes []string) (string, error)
}

type generator struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

var _ Generator = (*generator)(nil)

// NewGenerator は指定の設定と有効期間でgeneratorを生成します。
func NewGenerator(cfg Config, expiration time.Duration) *generator {
	return &generator{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken はHS256で署名したトークンを返します。
func (g *generator) GenerateToken(clientID string, scopes []string) (string, error) {
	if clientID == "" {
		return "", errors.New("client id is required")
	}
	if len(g.secret) == 0 {
		return "", errors.New("signing secret is empty")
	}

	now := g.now()
	claims := Claims{
		Scope: strings.Join(scopes, " "),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			Issuer:    g.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
