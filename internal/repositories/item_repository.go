package repositories

import (
	"github.com/campusfind/backend/internal/models"
	"github.com/campusfind/backend/internal/realtime"
	"gorm.io/gorm"
)

// ItemRepository defines the interface for item data operations
type ItemRepository interface {
	CreateItem(item *models.Item) error
	GetItemByID(id uint) (*models.Item, error)
	GetItems(filter models.ItemFilter) ([]models.Item, error)
	GetByReporterAndStatus(reporterID uint, status models.ItemStatus) ([]models.Item, error)
	FindFoundCandidates(excludeReporterID uint, category models.ItemCategory, location string) ([]models.Item, error)
	UpdateItem(item *models.Item) error
}

// PostgresItemRepository implements ItemRepository for PostgreSQL.
// Successful writes are published on the change feed so realtime
// sessions and matching recomputes see them without polling.
type PostgresItemRepository struct {
	db   *gorm.DB
	feed *realtime.Feed
}

// NewPostgresItemRepository creates a new PostgresItemRepository
func NewPostgresItemRepository(db *gorm.DB, feed *realtime.Feed) *PostgresItemRepository {
	return &PostgresItemRepository{db: db, feed: feed}
}

func (r *PostgresItemRepository) CreateItem(item *models.Item) error {
	if err := r.db.Create(item).Error; err != nil {
		return err
	}
	inserted := *item
	r.feed.Publish(realtime.Event{Op: realtime.OpInsert, Table: realtime.TableItems, New: &inserted})
	return nil
}

func (r *PostgresItemRepository) GetItemByID(id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.Preload("ReportedBy").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItems lists items newest first, applying any filters set on f.
func (r *PostgresItemRepository) GetItems(f models.ItemFilter) ([]models.Item, error) {
	q := r.db.Preload("ReportedBy").Order("created_at DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE LOWER(?)", "%"+f.Location+"%")
	}
	if f.Query != "" {
		q = q.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", "%"+f.Query+"%", "%"+f.Query+"%")
	}
	var items []models.Item
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByReporterAndStatus returns one user's items in a given status.
func (r *PostgresItemRepository) GetByReporterAndStatus(reporterID uint, status models.ItemStatus) ([]models.Item, error) {
	var items []models.Item
	err := r.db.Where("reported_by_id = ? AND status = ?", reporterID, status).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FindFoundCandidates returns found-status items reported by someone else
// whose category equals the given one or whose location contains the given
// location (case-insensitive), newest first, with reporter preloaded.
func (r *PostgresItemRepository) FindFoundCandidates(excludeReporterID uint, category models.ItemCategory, location string) ([]models.Item, error) {
	var items []models.Item
	err := r.db.Preload("ReportedBy").
		Where("status = ? AND reported_by_id <> ?", models.ItemStatusFound, excludeReporterID).
		Where("category = ? OR LOWER(location) LIKE LOWER(?)", category, "%"+location+"%").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem saves an edited item and publishes an update event carrying
// the previous row, so consumers can detect status changes.
func (r *PostgresItemRepository) UpdateItem(item *models.Item) error {
	var old models.Item
	if err := r.db.First(&old, item.ID).Error; err != nil {
		return err
	}
	if err := r.db.Save(item).Error; err != nil {
		return err
	}
	updated := *item
	r.feed.Publish(realtime.Event{Op: realtime.OpUpdate, Table: realtime.TableItems, New: &updated, Old: &old})
	return nil
}
