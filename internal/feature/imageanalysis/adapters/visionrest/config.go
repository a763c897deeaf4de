// Package visionrest はCloud Vision REST API（google.golang.org/api/vision/v1）を使用した
// ImageAnnotator実装を提供します。
package visionrest

import (
	"os"
	"time"
)

// Config はVision RESTクライアントの設定です。
type Config struct {
	Endpoint string        // APIのベースURL（空の場合はデフォルトのvision.googleapis.com）
	Timeout  time.Duration // HTTPリクエストのタイムアウト
}

// LoadConfig は環境変数からVision RESTクライアントの設定を読み込みます。
func LoadConfig() Config {
	timeout := 30 * time.Second
	if v := os.Getenv("VISION_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			timeout = d
		}
	}
	return Config{
		Endpoint: os.Getenv("VISION_ENDPOINT"),
		Timeout:  timeout,
	}
}
