package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/prubianes/guit-app-api/internal/errors"
	"github.com/prubianes/guit-app-api/internal/models"
	"github.com/prubianes/guit-app-api/internal/pagination"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(ctx context.Context, name string, categoryType models.CategoryType) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	category := &models.Category{Name: name, Type: categoryType}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCreation, err)
	}
	return category, nil
}

// ListCategories retrieves a paginated list of categories, optionally of one type.
func (s *categoryService) ListCategories(ctx context.Context, page pagination.PageRequest, categoryType *models.CategoryType) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Category{})
	if categoryType != nil {
		base = base.Where("type = ?", *categoryType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRetrieval, err)
	}

	var categories []models.Category
	if err := base.Scopes(pagination.Paginate(page)).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRetrieval, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryByID retrieves a category by ID
func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrRetrieval, err)
	}
	return &category, nil
}

// UpdateCategory updates a category's name or type.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID uint, name *string, categoryType *models.CategoryType) (*models.Category, error) {
	category, err := s.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name cannot be empty")
		}
		updates["name"] = trimmed
	}
	if categoryType != nil {
		updates["type"] = *categoryType
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrUpdate, err)
		}
	}
	return category, nil
}

// DeleteCategory deletes a category that no transaction or budget uses.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID uint) (*models.Category, error) {
	category, err := s.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inUse int64
		if err := tx.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&inUse).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDeletion, err)
		}
		if inUse > 0 {
			return apperrors.ErrCategoryInUse
		}
		if err := tx.Where("category_id = ?", categoryID).Delete(&models.Budget{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDeletion, err)
		}
		if err := tx.Delete(&models.Category{}, categoryID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDeletion, err)
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err, apperrors.ErrDeletion)
	}
	return category, nil
}
