package services

import (
	"errors"
	"fmt"
	"log"
	"pos_system/internal/models"
	"pos_system/internal/repository"
	"time"

	"gorm.io/gorm"
)

// ProductCache is the slice of the Redis client the catalog needs. A nil
// cache disables caching, which the service tolerates.
type ProductCache interface {
	SetProducts(products []models.Product, ttl time.Duration) error
	GetProducts() ([]models.Product, error)
	InvalidateProducts() error
}

type CatalogService interface {
	GetAllProducts() ([]models.Product, error)
	GetProductByID(id uint) (*models.Product, error)
	CreateProduct(product *models.Product) error
	UpdateProduct(product *models.Product) error
	DeleteProduct(id uint) error

	GetCategoryTree() ([]models.Category, error)
	CreateCategory(category *models.Category) error
	UpdateCategory(category *models.Category) error
	DeleteCategory(id uint) error
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        ProductCache
	cacheTTL     time.Duration
}

func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, cache ProductCache, cacheTTL time.Duration) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

// GetAllProducts serves from the Redis cache when populated; a cache miss
// or error falls through to the database and refills the cache.
func (s *catalogService) GetAllProducts() ([]models.Product, error) {
	if s.cache != nil {
		if products, err := s.cache.GetProducts(); err == nil {
			return products, nil
		}
	}

	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetProducts(products, s.cacheTTL); err != nil {
			// Cache failures must not break reads
			log.Printf("Warning: failed to cache products: %v", err)
		}
	}
	return products, nil
}

func (s *catalogService) GetProductByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) CreateProduct(product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if product.Price < 0 {
		return fmt.Errorf("%w: product price must not be negative", ErrValidation)
	}
	if err := s.productRepo.Create(product); err != nil {
		return err
	}
	s.invalidateProducts()
	return nil
}

func (s *catalogService) UpdateProduct(product *models.Product) error {
	if product.Price < 0 {
		return fmt.Errorf("%w: product price must not be negative", ErrValidation)
	}
	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	s.invalidateProducts()
	return nil
}

func (s *catalogService) DeleteProduct(id uint) error {
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateProducts()
	return nil
}

func (s *catalogService) invalidateProducts() {
	if s.cache != nil {
		if err := s.cache.InvalidateProducts(); err != nil {
			log.Printf("Warning: failed to invalidate product cache: %v", err)
		}
	}
}

// GetCategoryTree loads the flat category rows and assembles the nested
// tree; top-level categories come back in id order with their children.
func (s *catalogService) GetCategoryTree() ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return BuildCategoryTree(categories), nil
}

// BuildCategoryTree turns a flat parent-referencing list into a tree.
// Rows whose parent is missing from the input are treated as roots.
func BuildCategoryTree(flat []models.Category) []models.Category {
	known := make(map[uint]bool, len(flat))
	for _, c := range flat {
		known[c.ID] = true
	}

	childrenOf := make(map[uint][]models.Category)
	var topLevel []models.Category
	for _, c := range flat {
		if c.ParentID != nil && known[*c.ParentID] {
			childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c)
		} else {
			topLevel = append(topLevel, c)
		}
	}

	var attach func(c models.Category) models.Category
	attach = func(c models.Category) models.Category {
		kids := childrenOf[c.ID]
		c.Children = make([]models.Category, 0, len(kids))
		for _, k := range kids {
			c.Children = append(c.Children, attach(k))
		}
		return c
	}

	roots := make([]models.Category, 0, len(topLevel))
	for _, r := range topLevel {
		roots = append(roots, attach(r))
	}
	return roots
}

func (s *catalogService) CreateCategory(category *models.Category) error {
	if category.Name == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}
	return s.categoryRepo.Create(category)
}

func (s *catalogService) UpdateCategory(category *models.Category) error {
	return s.categoryRepo.Update(category)
}

func (s *catalogService) DeleteCategory(id uint) error {
	return s.categoryRepo.Delete(id)
}
