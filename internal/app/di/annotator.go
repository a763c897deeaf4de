// Package di はアプリケーションコンポーネントを組み立てるファクトリを提供します。
package di

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"vision_backend/internal/feature/imageanalysis/adapters/cache"
	"vision_backend/internal/feature/imageanalysis/adapters/visiongrpc"
	"vision_backend/internal/feature/imageanalysis/adapters/visionrest"
	"vision_backend/internal/feature/imageanalysis/usecase"
	"vision_backend/internal/platform/credentials"
)

// Transport はVision APIへの接続方式です。
type Transport string

const (
	TransportREST Transport = "rest"
	TransportGRPC Transport = "grpc"
)

// AnnotatorConfig はImageAnnotatorの組み立て設定です。
type AnnotatorConfig struct {
	Transport   Transport
	CacheTTL    time.Duration
	Credentials credentials.Config
	REST        visionrest.Config
	GRPC        visiongrpc.Config
}

// LoadAnnotatorConfig は環境変数からImageAnnotatorの設定を読み込みます。
// VISION_TRANSPORT（rest|grpc、既定rest）と VISION_CACHE_TTL（既定24h）を参照します。
func LoadAnnotatorConfig() (AnnotatorConfig, error) {
	transport := Transport(strings.ToLower(os.Getenv("VISION_TRANSPORT")))
	if transport == "" {
		transport = TransportREST
	}
	if transport != TransportREST && transport != TransportGRPC {
		return AnnotatorConfig{}, fmt.Errorf("unknown VISION_TRANSPORT %q", transport)
	}

	var ttl time.Duration
	if v := os.Getenv("VISION_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return AnnotatorConfig{}, fmt.Errorf("invalid VISION_CACHE_TTL: %w", err)
		}
		ttl = d
	}

	return AnnotatorConfig{
		Transport:   transport,
		CacheTTL:    ttl,
		Credentials: credentials.LoadConfig(),
		REST:        visionrest.LoadConfig(),
		GRPC:        visiongrpc.LoadConfig(),
	}, nil
}

// Annotator はImageAnnotatorと、その解放処理をまとめたものです。
type Annotator struct {
	usecase.ImageAnnotator
	close func() error
}

// Close は下位クライアントを解放します。
func (a *Annotator) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// NewAnnotator は設定に従ってVisionクライアントを生成し、Redisキャッシュでラップします。
// rdbがnilの場合はキャッシュなしで動作します。
func NewAnnotator(ctx context.Context, cfg AnnotatorConfig, rdb *redis.Client) (*Annotator, error) {
	ts, err := credentials.TokenSource(ctx, cfg.Credentials)
	if err != nil {
		return nil, err
	}

	var (
		inner   usecase.ImageAnnotator
		closeFn func() error
	)
	switch cfg.Transport {
	case TransportGRPC:
		var opts []option.ClientOption
		if cfg.Credentials.Mode == credentials.ModeNone {
			opts = append(opts,
				option.WithoutAuthentication(),
				option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
			)
		}
		a, err := visiongrpc.NewGRPCAnnotator(ctx, cfg.GRPC, ts, opts...)
		if err != nil {
			return nil, err
		}
		inner, closeFn = a, a.Close
	default:
		a, err := visionrest.NewRESTAnnotator(ctx, cfg.REST, ts)
		if err != nil {
			return nil, err
		}
		inner = a
	}

	slog.Info("vision annotator configured",
		"transport", cfg.Transport,
		"credentials", cfg.Credentials.Mode,
		"cache", rdb != nil,
	)
	return &Annotator{
		ImageAnnotator: cache.NewCachingAnnotator(rdb, cfg.CacheTTL, inner, "vision"),
		close:          closeFn,
	}, nil
}
