package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// CatalogGormRepository serves branches, stylists and services.
type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

var (
	_ availability.StylistRepository = (*CatalogGormRepository)(nil)
	_ availability.ServiceRepository = (*CatalogGormRepository)(nil)
	_ availability.BranchRepository  = (*CatalogGormRepository)(nil)
)

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *CatalogGormRepository) FindBranchByID(
	ctx context.Context,
	id uint,
) (*models.Branch, error) {

	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		return nil, notFound(err, availability.ErrBranchNotFound)
	}
	return &branch, nil
}

func (r *CatalogGormRepository) FindStylistByID(
	ctx context.Context,
	id uint,
) (*models.Stylist, error) {

	var stylist models.Stylist
	if err := r.db.WithContext(ctx).First(&stylist, id).Error; err != nil {
		return nil, notFound(err, availability.ErrStylistNotFound)
	}
	return &stylist, nil
}

func (r *CatalogGormRepository) FindServiceByID(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, notFound(err, availability.ErrServiceNotFound)
	}
	return &service, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *CatalogGormRepository) ListBranches(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	err := r.db.WithContext(ctx).Order("name ASC").Find(&branches).Error
	return branches, err
}

func (r *CatalogGormRepository) ListStylists(ctx context.Context, branchID uint) ([]models.Stylist, error) {
	var stylists []models.Stylist
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND active = ?", branchID, true).
		Order("display_name ASC").
		Find(&stylists).Error
	return stylists, err
}

func (r *CatalogGormRepository) ListServices(ctx context.Context, branchID uint) ([]models.Service, error) {
	var services []models.Service
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND active = ?", branchID, true).
		Order("category ASC, name ASC").
		Find(&services).Error
	return services, err
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *CatalogGormRepository) UpdateBranchSchedule(
	ctx context.Context,
	branchID uint,
	hours models.OperatingHours,
	minAdvanceMinutes int,
) (*models.Branch, error) {

	branch, err := r.FindBranchByID(ctx, branchID)
	if err != nil {
		return nil, err
	}

	branch.Hours = hours
	branch.MinAdvanceMinutes = minAdvanceMinutes

	if err := r.db.WithContext(ctx).Save(branch).Error; err != nil {
		return nil, err
	}
	return branch, nil
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
