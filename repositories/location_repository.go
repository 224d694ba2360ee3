package repositories

import (
	"errors"

	"fiber-erp/apperrors"
	"fiber-erp/models"

	"gorm.io/gorm"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// CreateStore inserts a main store. Code must be unique among active
// main stores.
func (r *LocationRepository) CreateStore(store *models.Store) error {
	store.Kind = models.StoreKindMain
	store.ParentID = nil
	store.IsActive = true

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&models.Store{}).
			Where("code = ? AND kind = ? AND parent_id IS NULL AND is_active = ?", store.Code, models.StoreKindMain, true).
			Count(&count)
		if count > 0 {
			return apperrors.DuplicateCode("store code " + store.Code + " already exists")
		}
		return tx.Create(store).Error
	})
}

// CreateSubStore inserts a sub store under an existing, active main
// store. Code must be unique among that parent's active sub stores.
func (r *LocationRepository) CreateSubStore(parentID uint, store *models.Store) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var parent models.Store
		if err := tx.First(&parent, "id = ? AND is_active = ?", parentID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("parent store")
			}
			return err
		}
		if parent.Kind != models.StoreKindMain {
			return apperrors.Validation("a sub store's parent must be a main store")
		}

		var count int64
		tx.Model(&models.Store{}).
			Where("code = ? AND kind = ? AND parent_id = ? AND is_active = ?", store.Code, models.StoreKindSub, parentID, true).
			Count(&count)
		if count > 0 {
			return apperrors.DuplicateCode("sub store code " + store.Code + " already exists under " + parent.Code)
		}

		store.Kind = models.StoreKindSub
		store.ParentID = &parent.ID
		store.IsActive = true
		return tx.Create(store).Error
	})
}

// AddRack inserts a rack into a store; code unique among the store's
// active racks.
func (r *LocationRepository) AddRack(storeID uint, rack *models.Rack) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var store models.Store
		if err := tx.First(&store, "id = ? AND is_active = ?", storeID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("store")
			}
			return err
		}

		var count int64
		tx.Model(&models.Rack{}).
			Where("store_id = ? AND code = ? AND is_active = ?", storeID, rack.Code, true).
			Count(&count)
		if count > 0 {
			return apperrors.DuplicateCode("rack code " + rack.Code + " already exists in store " + store.Code)
		}

		rack.StoreID = storeID
		rack.IsActive = true
		return tx.Create(rack).Error
	})
}

// AddShelf inserts a shelf into a rack; code unique among the rack's
// active shelves.
func (r *LocationRepository) AddShelf(rackID uint, shelf *models.Shelf) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var rack models.Rack
		if err := tx.First(&rack, "id = ? AND is_active = ?", rackID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("rack")
			}
			return err
		}

		var count int64
		tx.Model(&models.Shelf{}).
			Where("rack_id = ? AND code = ? AND is_active = ?", rackID, shelf.Code, true).
			Count(&count)
		if count > 0 {
			return apperrors.DuplicateCode("shelf code " + shelf.Code + " already exists in rack " + rack.Code)
		}

		shelf.RackID = rackID
		shelf.IsActive = true
		return tx.Create(shelf).Error
	})
}

// AddBin inserts a bin into a shelf; code unique among the shelf's
// active bins.
func (r *LocationRepository) AddBin(shelfID uint, bin *models.Bin) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var shelf models.Shelf
		if err := tx.First(&shelf, "id = ? AND is_active = ?", shelfID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("shelf")
			}
			return err
		}

		var count int64
		tx.Model(&models.Bin{}).
			Where("shelf_id = ? AND code = ? AND is_active = ?", shelfID, bin.Code, true).
			Count(&count)
		if count > 0 {
			return apperrors.DuplicateCode("bin code " + bin.Code + " already exists in shelf " + shelf.Code)
		}

		bin.ShelfID = shelfID
		bin.IsActive = true
		return tx.Create(bin).Error
	})
}

// Resolve loads and validates a location path. Every referenced node
// must exist, be active and hang off the previous level.
func (r *LocationRepository) Resolve(storeID uint, rackID, shelfID, binID *uint) (*models.LocationPath, error) {
	path := &models.LocationPath{}

	var store models.Store
	if err := r.db.First(&store, "id = ? AND is_active = ?", storeID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("store")
		}
		return nil, err
	}
	path.Store = &store

	if rackID != nil {
		var rack models.Rack
		if err := r.db.First(&rack, "id = ? AND is_active = ?", *rackID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("rack")
			}
			return nil, err
		}
		path.Rack = &rack
	}

	if shelfID != nil {
		var shelf models.Shelf
		if err := r.db.First(&shelf, "id = ? AND is_active = ?", *shelfID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("shelf")
			}
			return nil, err
		}
		path.Shelf = &shelf
	}

	if binID != nil {
		var bin models.Bin
		if err := r.db.First(&bin, "id = ? AND is_active = ?", *binID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("bin")
			}
			return nil, err
		}
		path.Bin = &bin
	}

	if err := path.Consistent(); err != nil {
		return nil, apperrors.New(apperrors.KindNotFound, "NOT_FOUND", err.Error())
	}
	return path, nil
}

// ListSubStores returns the active sub stores of a main store.
func (r *LocationRepository) ListSubStores(mainID uint) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.
		Where("parent_id = ? AND kind = ? AND is_active = ?", mainID, models.StoreKindSub, true).
		Order("code").
		Find(&stores).Error
	return stores, err
}

// Flatten returns the whole active rack/shelf/bin tree of one store as
// flat rows so cascading selectors can filter client-side.
func (r *LocationRepository) Flatten(storeID uint) ([]models.FlatLocation, error) {
	var store models.Store
	if err := r.db.First(&store, "id = ? AND is_active = ?", storeID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("store")
		}
		return nil, err
	}

	sqlFlatten := `SELECT r.id AS rack_id, r.code AS rack_code,
	s.id AS shelf_id, s.code AS shelf_code,
	b.id AS bin_id, b.code AS bin_code
	FROM racks r
	LEFT JOIN shelves s ON s.rack_id = r.id AND s.is_active = ? AND s.deleted_at IS NULL
	LEFT JOIN bins b ON b.shelf_id = s.id AND b.is_active = ? AND b.deleted_at IS NULL
	WHERE r.store_id = ? AND r.is_active = ? AND r.deleted_at IS NULL
	ORDER BY r.code, s.code, b.code`

	var rows []models.FlatLocation
	if err := r.db.Raw(sqlFlatten, true, true, storeID, true).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Deactivate soft-disables a node. Historical GRN references keep
// pointing at the row.
func (r *LocationRepository) Deactivate(kind string, id uint, actorID int) error {
	var res *gorm.DB
	switch kind {
	case "store":
		res = r.db.Model(&models.Store{}).Where("id = ?", id).
			Updates(map[string]interface{}{"is_active": false, "updated_by": actorID})
	case "rack":
		res = r.db.Model(&models.Rack{}).Where("id = ?", id).
			Updates(map[string]interface{}{"is_active": false, "updated_by": actorID})
	case "shelf":
		res = r.db.Model(&models.Shelf{}).Where("id = ?", id).
			Updates(map[string]interface{}{"is_active": false, "updated_by": actorID})
	case "bin":
		res = r.db.Model(&models.Bin{}).Where("id = ?", id).
			Updates(map[string]interface{}{"is_active": false, "updated_by": actorID})
	default:
		return apperrors.Validation("unknown location kind: " + kind)
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(kind)
	}
	return nil
}
