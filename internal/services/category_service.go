package services

import (
	"errors"
	"fmt"

	"gemshop/internal/models"
	"gemshop/internal/repositories"
)

// CategoryService handles business logic for the category tree.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// ListCategories retrieves all categories.
func (s *CategoryService) ListCategories() ([]models.Category, error) {
	return s.repo.GetAll()
}

// GetCategory retrieves a single category by its ID.
func (s *CategoryService) GetCategory(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d", ErrCategoryNotFound, id)
		}
		return nil, err
	}
	return category, nil
}

// CreateCategory creates a new category, validating the parent if set.
func (s *CategoryService) CreateCategory(category *models.Category) error {
	if category.ParentCategoryID != nil {
		if _, err := s.GetCategory(*category.ParentCategoryID); err != nil {
			return err
		}
	}
	if err := s.repo.Create(category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// UpdateCategory updates an existing category.
func (s *CategoryService) UpdateCategory(category *models.Category) error {
	if _, err := s.GetCategory(category.CategoryID); err != nil {
		return err
	}
	if category.ParentCategoryID != nil {
		if *category.ParentCategoryID == category.CategoryID {
			return fmt.Errorf("%w: category cannot be its own parent", ErrInvalidRequest)
		}
		if _, err := s.GetCategory(*category.ParentCategoryID); err != nil {
			return err
		}
	}
	if err := s.repo.Update(category); err != nil {
		return fmt.Errorf("failed to update category %d: %w", category.CategoryID, err)
	}
	return nil
}

// DeleteCategory deletes a category by its ID.
func (s *CategoryService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
