package repository

import (
	"context"

	"github.com/mealfeed/backend/internal/entity"
	"github.com/mealfeed/backend/pkg/xcontext"

	"gorm.io/gorm/clause"
)

type ContentRepository interface {
	Upsert(ctx context.Context, data *entity.Content) error
	Get(ctx context.Context, typ entity.ActivityType, id string) (*entity.Content, error)

	// MarkPublished flips the publish flag of the entity. It reports false
	// without error when the flag was already set; check-and-set happens in
	// one statement, so two racing publishes cannot both win.
	MarkPublished(ctx context.Context, typ entity.ActivityType, id string) (bool, error)

	ListPublishedByAuthor(ctx context.Context, authorID string) ([]entity.Content, error)
	Delete(ctx context.Context, typ entity.ActivityType, id string) error
}

type contentRepository struct{}

func NewContentRepository() *contentRepository {
	return &contentRepository{}
}

func (r *contentRepository) Upsert(ctx context.Context, data *entity.Content) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}, {Name: "type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"author_id", "title", "body", "updated_at",
			}),
		}).
		Create(data).Error
}

func (r *contentRepository) Get(
	ctx context.Context, typ entity.ActivityType, id string,
) (*entity.Content, error) {
	var result entity.Content
	err := xcontext.DB(ctx).Where("id=? AND type=?", id, typ).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *contentRepository) MarkPublished(
	ctx context.Context, typ entity.ActivityType, id string,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Content{}).
		Where("id=? AND type=? AND published=?", id, typ, false).
		Update("published", true)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *contentRepository) ListPublishedByAuthor(
	ctx context.Context, authorID string,
) ([]entity.Content, error) {
	var result []entity.Content
	err := xcontext.DB(ctx).
		Where("author_id=? AND published=?", authorID, true).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *contentRepository) Delete(ctx context.Context, typ entity.ActivityType, id string) error {
	return xcontext.DB(ctx).
		Where("id=? AND type=?", id, typ).
		Delete(&entity.Content{}).Error
}
