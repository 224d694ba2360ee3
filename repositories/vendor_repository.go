package repositories

import (
	"errors"

	"fiber-erp/apperrors"
	"fiber-erp/models"

	"gorm.io/gorm"
)

// VendorRepository reads the vendor directory. Vendors are owned
// upstream; this service only stamps their name onto GRN headers.
type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

func (r *VendorRepository) GetByID(id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.First(&vendor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("vendor")
		}
		return nil, err
	}
	return &vendor, nil
}

func (r *VendorRepository) GetByCode(code string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.First(&vendor, "vendor_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("vendor")
		}
		return nil, err
	}
	return &vendor, nil
}

// ProjectRepository reads the project registry for stock-balance
// segmentation.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) GetActiveProjects() ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("is_active = ?", true).Order("code").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, "id = ? AND is_active = ?", id, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("project")
		}
		return nil, err
	}
	return &project, nil
}
