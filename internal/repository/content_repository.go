package repository

import (
	"memoverse_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) FindByRef(ref, translation string) (*model.Content, error) {
	var content model.Content
	err := r.DB.Where("ref = ? AND translation = ?", ref, translation).First(&content).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *ContentRepository) Create(content *model.Content) error {
	return r.DB.Create(content).Error
}

func (r *ContentRepository) Search(query string, limit int) ([]model.Content, error) {
	var contents []model.Content
	term := "%" + query + "%"
	err := r.DB.Where("display_ref LIKE ? OR ref LIKE ?", term, term).
		Limit(limit).
		Find(&contents).Error
	return contents, err
}
