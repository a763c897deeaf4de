// Package entity defines the domain models for the history feature.
package entity

import "time"

// DetectionRecord is one completed image detection.
// The image itself is never stored, only its digest.
type DetectionRecord struct {
	ID          uint      `gorm:"primaryKey"`
	Kind        string    `gorm:"size:32;not null;index"`
	ImageDigest string    `gorm:"size:64;not null;index"`
	MaxResults  int       `gorm:"not null;default:1"`
	ResultCount int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
}
