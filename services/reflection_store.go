package services

import (
	"context"
	"errors"
	"time"

	"github.com/renukakulkarni2721/MindMirror/models"
	"github.com/renukakulkarni2721/MindMirror/utils"

	"gorm.io/gorm"
)

// ReflectionStore 反思记录存取层。(user_id, date) 不做唯一约束，
// 同一天的重复记录以 created_at 最新的一条为准。
type ReflectionStore struct {
	db *gorm.DB
}

func NewReflectionStore(db *gorm.DB) *ReflectionStore {
	return &ReflectionStore{db: db}
}

// Create 持久化一条反思记录，补全ID和创建时间，返回生成的ID
func (s *ReflectionStore) Create(ctx context.Context, record *models.ReflectionRecord) (string, error) {
	record.ID = utils.GenerateID()
	record.CreatedAt = time.Now().UTC()
	if record.Status == "" {
		record.Status = models.StatusPending
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return "", err
	}
	return record.ID, nil
}

// UpdateAnalysis 写入分析结果并把状态从 pending 推进到 completed。
// 状态只能从 pending 出发，已终态的记录不再改动。
func (s *ReflectionStore) UpdateAnalysis(ctx context.Context, id string, data *models.AnalysisData) error {
	return s.db.WithContext(ctx).Model(&models.ReflectionRecord{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(map[string]interface{}{
			"transcript":          data.Transcript,
			"primary_emotion":     data.PrimaryEmotion,
			"secondary_emotion":   data.SecondaryEmotion,
			"theme":               data.Theme,
			"emotional_intensity": data.EmotionalIntensity,
			"daily_insight":       data.DailyInsight,
			"status":              models.StatusCompleted,
		}).Error
}

// MarkFailed 分析失败时把状态从 pending 推进到 failed
func (s *ReflectionStore) MarkFailed(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Model(&models.ReflectionRecord{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Update("status", models.StatusFailed).Error
}

// GetByID 按ID查询单条记录
func (s *ReflectionStore) GetByID(ctx context.Context, id string) (*models.ReflectionRecord, error) {
	var record models.ReflectionRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReflectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByUserAndDate 查询某用户某天的反思，存在重复时取最新的一条
func (s *ReflectionStore) GetByUserAndDate(ctx context.Context, userID, date string) (*models.ReflectionRecord, error) {
	var record models.ReflectionRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at desc").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReflectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListRecent 按创建时间倒序返回某用户最近的反思
func (s *ReflectionStore) ListRecent(ctx context.Context, userID string, limit int) ([]models.ReflectionRecord, error) {
	var records []models.ReflectionRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteOwned 删除记录，删除前按userId重新校验所有权
func (s *ReflectionStore) DeleteOwned(ctx context.Context, id, requestingUserID string) error {
	record, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record.UserID != requestingUserID {
		return ErrForbidden
	}
	return s.db.WithContext(ctx).Delete(&models.ReflectionRecord{}, "id = ?", id).Error
}
