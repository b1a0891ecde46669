package services

import (
	"fmt"

	"gemshop/internal/models"
	"gemshop/internal/repositories"
)

// CatalogService manages the reference data behind the product catalog:
// materials with their current rates, and product attributes.
type CatalogService struct {
	materialRepo  repositories.MaterialRepository
	attributeRepo repositories.AttributeRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(materialRepo repositories.MaterialRepository, attributeRepo repositories.AttributeRepository) *CatalogService {
	return &CatalogService{
		materialRepo:  materialRepo,
		attributeRepo: attributeRepo,
	}
}

// ListMaterials retrieves all materials.
func (s *CatalogService) ListMaterials() ([]models.Material, error) {
	return s.materialRepo.GetAll()
}

// CreateMaterial registers a new material.
func (s *CatalogService) CreateMaterial(material *models.Material) error {
	if material.MaterialName == "" {
		return fmt.Errorf("%w: material name is required", ErrInvalidRequest)
	}
	if err := s.materialRepo.Create(material); err != nil {
		return fmt.Errorf("failed to create material: %w", err)
	}
	return nil
}

// UpdateMaterial updates a material, typically its current rate.
func (s *CatalogService) UpdateMaterial(material *models.Material) error {
	if err := s.materialRepo.Update(material); err != nil {
		return fmt.Errorf("failed to update material %d: %w", material.MaterialID, err)
	}
	return nil
}

// ListAttributes retrieves all attributes with their values.
func (s *CatalogService) ListAttributes() ([]models.Attribute, error) {
	return s.attributeRepo.GetAll()
}

// CreateAttribute registers a new attribute and its values.
func (s *CatalogService) CreateAttribute(attribute *models.Attribute) error {
	if attribute.AttributeName == "" {
		return fmt.Errorf("%w: attribute name is required", ErrInvalidRequest)
	}
	if err := s.attributeRepo.Create(attribute); err != nil {
		return fmt.Errorf("failed to create attribute: %w", err)
	}
	return nil
}
