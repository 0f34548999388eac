package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trade-palace.backend/internal/domain/entities"
	domainerrors "trade-palace.backend/internal/domain/errors"
	"trade-palace.backend/internal/infrastructure/models"
)

// AdminSettingRepository implements platform setting operations
type AdminSettingRepository struct {
	db *gorm.DB
}

// NewAdminSettingRepository creates a new admin setting repository
func NewAdminSettingRepository(db *gorm.DB) *AdminSettingRepository {
	return &AdminSettingRepository{db: db}
}

// Get gets a setting by key
func (r *AdminSettingRepository) Get(ctx context.Context, key string) (*entities.AdminSetting, error) {
	db := GetDB(ctx, r.db)
	var m models.AdminSetting
	if err := db.WithContext(ctx).Where("setting_key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return settingToEntity(&m), nil
}

// Upsert inserts or updates a setting by key
func (r *AdminSettingRepository) Upsert(ctx context.Context, setting *entities.AdminSetting) error {
	db := GetDB(ctx, r.db)

	if setting.ID == uuid.Nil {
		setting.ID = uuid.New()
	}
	m := &models.AdminSetting{
		ID:           setting.ID,
		SettingKey:   setting.Key,
		SettingValue: setting.Value,
		UpdatedBy:    setting.UpdatedBy,
		UpdatedAt:    time.Now(),
	}

	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_by", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	setting.UpdatedAt = m.UpdatedAt
	return nil
}

// List lists all settings
func (r *AdminSettingRepository) List(ctx context.Context) ([]*entities.AdminSetting, error) {
	db := GetDB(ctx, r.db)
	var rows []models.AdminSetting
	if err := db.WithContext(ctx).Order("setting_key").Find(&rows).Error; err != nil {
		return nil, err
	}

	settings := make([]*entities.AdminSetting, 0, len(rows))
	for i := range rows {
		settings = append(settings, settingToEntity(&rows[i]))
	}
	return settings, nil
}

func settingToEntity(m *models.AdminSetting) *entities.AdminSetting {
	return &entities.AdminSetting{
		ID:        m.ID,
		Key:       m.SettingKey,
		Value:     m.SettingValue,
		UpdatedBy: m.UpdatedBy,
		UpdatedAt: m.UpdatedAt,
	}
}
