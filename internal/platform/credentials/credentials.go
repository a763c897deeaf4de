// Package credentials はVision API呼び出しに使うOAuth2トークンソースを解決します。
package credentials

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	vision "google.golang.org/api/vision/v1"
)

// Mode はトークンソースの解決方法です。
type Mode string

const (
	// ModeADC はApplication Default Credentialsを使用します。
	ModeADC Mode = "adc"
	// ModeStatic はVISION_ACCESS_TOKENの固定トークンを使用します。
	ModeStatic Mode = "static"
	// ModeNone は認証なしで接続します（エミュレータ用）。
	ModeNone Mode = "none"
)

// Config は認証情報の設定です。
type Config struct {
	Mode        Mode
	AccessToken string
	Scopes      []string
}

// LoadConfig は環境変数から認証設定を読み込みます。
// VISION_AUTH未設定時は、VISION_ACCESS_TOKENがあればstatic、なければadcになります。
func LoadConfig() Config {
	token := os.Getenv("VISION_ACCESS_TOKEN")
	mode := Mode(strings.ToLower(os.Getenv("VISION_AUTH")))
	if mode == "" {
		mode = ModeADC
		if token != "" {
			mode = ModeStatic
		}
	}
	return Config{
		Mode:        mode,
		AccessToken: token,
		Scopes:      []string{vision.CloudVisionScope},
	}
}

// TokenSource は設定に応じたトークンソースを返します。ModeNoneの場合はnilを返します。
func TokenSource(ctx context.Context, cfg Config) (oauth2.TokenSource, error) {
	switch cfg.Mode {
	case ModeNone:
		return nil, nil
	case ModeStatic:
		if cfg.AccessToken == "" {
			return nil, fmt.Errorf("VISION_ACCESS_TOKEN is required for static credentials")
		}
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken, TokenType: "Bearer"}), nil
	case ModeADC:
		creds, err := google.FindDefaultCredentials(ctx, cfg.Scopes...)
		if err != nil {
			return nil, fmt.Errorf("find default credentials: %w", err)
		}
		return creds.TokenSource, nil
	default:
		return nil, fmt.Errorf("unknown credentials mode %q", cfg.Mode)
	}
}
