// Package adapters はhistoryフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"vision_backend/internal/feature/history/domain/entity"
	"vision_backend/internal/feature/history/usecase"
)

// historyGorm はHistoryRepositoryインターフェースのgorm実装です。
type historyGorm struct {
	db *gorm.DB
}

var _ usecase.HistoryRepository = (*historyGorm)(nil)

// NewHistoryRepository は指定されたDB接続でhistoryGormリポジトリの新しいインスタンスを生成します。
func NewHistoryRepository(db *gorm.DB) *historyGorm {
	return &historyGorm{db: db}
}

// Create は検出履歴を1件保存します。
func (r *historyGorm) Create(ctx context.Context, record *entity.DetectionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListRecent は新しい順に最大limit件の検出履歴を返します。
func (r *historyGorm) ListRecent(ctx context.Context, limit int) ([]entity.DetectionRecord, error) {
	var records []entity.DetectionRecord
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
