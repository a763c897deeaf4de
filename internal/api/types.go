// Package api はHTTP APIのリクエスト・レスポンス型を定義します。
package api

import "time"

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// AnnotationResponse はラベル・テキスト・ロゴの検出結果1件です。
type AnnotationResponse struct {
	Mid         string  `json:"mid,omitempty"`
	Description string  `json:"description"`
	Locale      string  `json:"locale,omitempty"`
	Score       float32 `json:"score"`
}

// SafeSearchResponse はセーフサーチの判定結果です。
type SafeSearchResponse struct {
	Adult    string `json:"adult"`
	Spoof    string `json:"spoof"`
	Medical  string `json:"medical"`
	Violence string `json:"violence"`
	Racy     string `json:"racy"`
}

// CompanyAnalysisRequest は企業分析リクエストです。
type CompanyAnalysisRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
}

// CompanyAnalysisResponse は企業分析レスポンスです。
type CompanyAnalysisResponse struct {
	CompanyName string `json:"company_name"`
	Summary     string `json:"summary"`
}

// DetectionRecordResponse は検出履歴1件です。
type DetectionRecordResponse struct {
	ID          uint      `json:"id"`
	Kind        string    `json:"kind"`
	ImageDigest string    `json:"image_digest"`
	MaxResults  int       `json:"max_results"`
	ResultCount int       `json:"result_count"`
	CreatedAt   time.Time `json:"created_at"`
}
