package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/asif/userstore/internal/apperror"
	"github.com/asif/userstore/internal/model"
	"github.com/asif/userstore/internal/repository"
)

// ProductService handles CRUD rules for products. There are no
// registration or login semantics here — just presence checks, mirroring
// the user resource's shape.
type ProductService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewProductService creates a ProductService.
func NewProductService(repo repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates the name and stores a new product.
func (s *ProductService) Create(ctx context.Context, name, description string, price float64) (*model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "product name is required")
	}

	product := &model.Product{
		Name:        name,
		Description: strings.TrimSpace(description),
		Price:       price,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		s.logger.Error("failed to create product",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating product: %w", err)
	}

	s.logger.Info("product created", slog.String("id", product.ID))

	return product, nil
}

// List returns every product; empty store yields an empty slice.
func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.logger.Error("failed to list products", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product.
func (s *ProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Update replaces all mutable fields of an existing product. As with the
// user route, a partial field set is rejected outright rather than
// partially applied.
func (s *ProductService) Update(ctx context.Context, id, name, description string, price float64) (*model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Unauthorized("product name is required")
	}

	product := &model.Product{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(description),
		Price:       price,
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}

	s.logger.Info("product updated", slog.String("id", product.ID))

	return product, nil
}

// Delete removes a product by ID.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted", slog.String("id", id))
	return nil
}
