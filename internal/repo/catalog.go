package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/epicbeats/internal/domain"
	"github.com/Skotchmaster/epicbeats/internal/models"
)

type CatalogRepo struct {
	DB *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) *CatalogRepo {
	return &CatalogRepo{DB: db}
}

func toDomain(m models.Instrumental) domain.Instrumental {
	return domain.Instrumental{
		ID:        m.ID,
		Title:     m.Title,
		Genre:     m.Genre,
		BPM:       m.BPM,
		CoverPath: m.CoverPath,
		AudioPath: m.AudioPath,
		Price:     m.Price,
	}
}

func toDomainList(rows []models.Instrumental) []domain.Instrumental {
	out := make([]domain.Instrumental, 0, len(rows))
	for _, r := range rows {
		out = append(out, toDomain(r))
	}
	return out
}

func (r *CatalogRepo) ListAll(ctx context.Context) ([]domain.Instrumental, error) {
	var rows []models.Instrumental
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fail(ctx, "list instrumentals", err)
	}
	return toDomainList(rows), nil
}

func (r *CatalogRepo) ListFiltered(ctx context.Context, f domain.FilterCriteria) ([]domain.Instrumental, error) {
	q := BuildFilterQuery(f)

	var rows []models.Instrumental
	if err := r.DB.WithContext(ctx).Raw(q.SQL, q.Args...).Scan(&rows).Error; err != nil {
		return nil, fail(ctx, "filter instrumentals", err)
	}
	return toDomainList(rows), nil
}

func (r *CatalogRepo) FindByID(ctx context.Context, id uint) (*domain.Instrumental, error) {
	var row models.Instrumental
	res := r.DB.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&row)
	if res.Error != nil {
		return nil, fail(ctx, "find instrumental", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	item := toDomain(row)
	return &item, nil
}

// Create ignores item.ID and returns the id assigned by the store.
func (r *CatalogRepo) Create(ctx context.Context, item domain.Instrumental) (uint, error) {
	row := models.Instrumental{
		Title:     item.Title,
		Genre:     item.Genre,
		BPM:       item.BPM,
		CoverPath: item.CoverPath,
		AudioPath: item.AudioPath,
		Price:     item.Price,
	}
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fail(ctx, "create instrumental", err)
	}
	return row.ID, nil
}

// Update writes every mutable field. false means no row has item.ID.
func (r *CatalogRepo) Update(ctx context.Context, item domain.Instrumental) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Instrumental{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"title":      item.Title,
			"genre":      item.Genre,
			"bpm":        item.BPM,
			"cover_path": item.CoverPath,
			"audio_path": item.AudioPath,
			"price":      item.Price,
		})
	if res.Error != nil {
		return false, fail(ctx, "update instrumental", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *CatalogRepo) Delete(ctx context.Context, item domain.Instrumental) (bool, error) {
	res := r.DB.WithContext(ctx).Where("id = ?", item.ID).Delete(&models.Instrumental{})
	if res.Error != nil {
		return false, fail(ctx, "delete instrumental", res.Error)
	}
	return res.RowsAffected > 0, nil
}
