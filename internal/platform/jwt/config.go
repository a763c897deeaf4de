package jwtmw

import "os"

const (
	// EnvKeyJWTSecret はHMAC署名鍵を保持する環境変数名です。
	EnvKeyJWTSecret = "JWT_SECRET"
	// EnvKeyJWTIssuer はトークン発行者（iss）を保持する環境変数名です。
	EnvKeyJWTIssuer = "JWT_ISSUER"

	// DefaultIssuer はJWT_ISSUER未設定時の発行者です。
	DefaultIssuer = "vision_backend"
	// ScopeVision は画像解析APIの利用に必要なスコープです。
	ScopeVision = "vision"
)

// Config はJWTの署名・検証設定です。
type Config struct {
	Secret string
	Issuer string
}

// LoadConfig は環境変数からJWT設定を読み込みます。
func LoadConfig() Config {
	issuer := os.Getenv(EnvKeyJWTIssuer)
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return Config{
		Secret: os.Getenv(EnvKeyJWTSecret),
		Issuer: issuer,
	}
}
