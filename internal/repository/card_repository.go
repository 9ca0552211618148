package repository

import (
	"github.com/lab-annotate/cataloger-api/internal/database"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"github.com/lab-annotate/cataloger-api/internal/utils"
	"gorm.io/gorm"
)

// GormCardRepository is a GORM implementation of CardRepository
type GormCardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &GormCardRepository{db: db}
}

func (r *GormCardRepository) Create(card *models.Card) error {
	return r.db.Create(card).Error
}

func (r *GormCardRepository) FindByID(id uint64, preload ...string) (*models.Card, error) {
	var card models.Card
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&card, id).Error; err != nil {
		return nil, err
	}

	return &card, nil
}

func (r *GormCardRepository) List(filter CardFilter) ([]models.Card, int64, error) {
	var cards []models.Card

	query := r.db.Model(&models.Card{})
	if filter.UserID != nil {
		query = query.Where("cards.user_id = ?", *filter.UserID)
	}
	if filter.GroupID != nil {
		query = query.Where("cards.group_id = ?", *filter.GroupID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("cards.created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Offset: (filter.Page - 1) * filter.PageSize,
			Limit:  filter.PageSize,
		}))
	}

	if err := listQuery.Preload("User").Preload("Project").Find(&cards).Error; err != nil {
		return nil, 0, err
	}

	return cards, total, nil
}

func (r *GormCardRepository) Update(card *models.Card) error {
	// Save skips association sync; gene mods go through ReplaceGeneMods.
	return r.db.Omit("GeneMods").Save(card).Error
}

func (r *GormCardRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		card := models.Card{ID: id}
		if err := tx.Model(&card).Association("GeneMods").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Card{}, id).Error
	})
}

func (r *GormCardRepository) ReplaceGeneMods(card *models.Card, geneMods []models.GeneMod) error {
	assoc := r.db.Model(card).Association("GeneMods")
	if len(geneMods) == 0 {
		if err := assoc.Clear(); err != nil {
			return err
		}
		card.GeneMods = nil
		return nil
	}
	if err := assoc.Replace(geneMods); err != nil {
		return err
	}
	card.GeneMods = geneMods
	return nil
}
