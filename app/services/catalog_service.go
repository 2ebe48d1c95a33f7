package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"unicode/utf8"

	"github.com/novastreet/storefront/app/models"
	"github.com/novastreet/storefront/app/repositories"
	"github.com/novastreet/storefront/config"
	"github.com/novastreet/storefront/pkg/logger"
	"github.com/novastreet/storefront/pkg/metrics"
	"github.com/novastreet/storefront/pkg/storage"
)

// maxQueryLen bounds free-text search queries; anything longer is rejected
// as unprocessable rather than handed to the record store.
const maxQueryLen = 256

// ProductStore is the record-store surface the catalog needs.
type ProductStore interface {
	All(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (models.Product, error)
	Insert(ctx context.Context, p *models.Product) error
}

// AssetStore persists uploaded binaries and returns their web paths.
type AssetStore interface {
	SaveUpload(fh *multipart.FileHeader) (string, error)
	SaveUploads(fhs []*multipart.FileHeader) ([]string, error)
}

// DiskAssets is the default AssetStore, backed by pkg/storage's default disk.
type DiskAssets struct{}

func (DiskAssets) SaveUpload(fh *multipart.FileHeader) (string, error) {
	return storage.SaveUpload(fh)
}

func (DiskAssets) SaveUploads(fhs []*multipart.FileHeader) ([]string, error) {
	return storage.SaveUploads(fhs)
}

// CatalogService owns product records: listing, text search, and ingestion.
type CatalogService struct {
	store  ProductStore
	assets AssetStore
}

func NewCatalogService(store ProductStore, assets AssetStore) *CatalogService {
	return &CatalogService{store: store, assets: assets}
}

// List returns all products in storage-defined order.
func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return products, nil
}

// Search returns the products matching query. An empty result is a valid
// outcome, not a failure.
func (s *CatalogService) Search(ctx context.Context, query string) ([]models.Product, error) {
	if !utf8.ValidString(query) || len(query) > maxQueryLen {
		metrics.SearchQueries.WithLabelValues("error").Inc()
		return nil, ErrInvalidQuery
	}

	products, err := s.store.Search(ctx, query)
	if err != nil {
		metrics.SearchQueries.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if len(products) == 0 {
		metrics.SearchQueries.WithLabelValues("empty").Inc()
	} else {
		metrics.SearchQueries.WithLabelValues("hit").Inc()
	}
	return products, nil
}

// Find returns one product by identifier.
func (s *CatalogService) Find(ctx context.Context, id string) (models.Product, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNoProduct) {
			return p, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return p, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return p, nil
}

// CreateProductInput is the typed shape of the multipart product submission.
// bind.Multipart normalises every form field into it once, at the boundary.
type CreateProductInput struct {
	Name        string   `form:"name" json:"name" validate:"required,max=200"`
	Description string   `form:"description" json:"description" validate:"required,max=2000"`
	Price       *float64 `form:"price" json:"price" validate:"required,gte=0"`
	Discount    *float64 `form:"discount" json:"discount" validate:"nullable,gte=0"`
	Category    string   `form:"category" json:"category" validate:"required,max=100"`
	Sizes       []string `form:"sizes,json" json:"sizes"`
	Stock       string   `form:"stock" json:"stock" validate:"required,in=in stock,out of stock"`
	Status      *string  `form:"status" json:"status" validate:"nullable,max=50"`

	Image     *multipart.FileHeader   `file:"image"`
	SubImages []*multipart.FileHeader `file:"subImages"`
}

// Create validates in, persists its image payloads, then inserts the product
// record. Scalar validation happens before any asset write, so a rejected
// submission leaves nothing behind. A failure between the asset write and the
// record insert leaves orphaned assets; they are logged, not cleaned up.
func (s *CatalogService) Create(ctx context.Context, in CreateProductInput) (models.Product, error) {
	var p models.Product

	if errs := s.validateCreate(in); len(errs) > 0 {
		return p, &ValidationError{Fields: errs}
	}

	image := config.DefaultProductImage()
	stored := []string{}

	if in.Image != nil {
		path, err := s.assets.SaveUpload(in.Image)
		if err != nil {
			return p, &UploadError{Err: err}
		}
		image = path
		stored = append(stored, path)
	}

	subImages, err := s.assets.SaveUploads(in.SubImages)
	if err != nil {
		logger.WithCtx(ctx).Warn("orphaned assets after failed upload", "paths", append(stored, subImages...))
		return p, &UploadError{Err: err}
	}
	if subImages == nil {
		subImages = []string{}
	}

	sizes := in.Sizes
	if sizes == nil {
		sizes = []string{}
	}

	p = models.Product{
		Name:        in.Name,
		Description: in.Description,
		Image:       image,
		SubImages:   subImages,
		Price:       *in.Price,
		Discount:    in.Discount,
		Category:    in.Category,
		Sizes:       sizes,
		Stock:       in.Stock,
		Status:      in.Status,
	}

	if err := s.store.Insert(ctx, &p); err != nil {
		// Assets were written before the record insert failed. There is no
		// cross-store transaction; the orphans stay on disk.
		logger.WithCtx(ctx).Warn("orphaned assets after failed insert",
			"paths", append(stored, subImages...))
		return models.Product{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	metrics.ProductsCreated.Inc()
	return p, nil
}

// validateCreate covers the cross-field rule the tag validator cannot
// express: a discount must stay strictly below the price.
func (s *CatalogService) validateCreate(in CreateProductInput) map[string]string {
	errs := map[string]string{}
	if in.Discount != nil && in.Price != nil && *in.Discount >= *in.Price {
		errs["discount"] = "The discount must be less than the price."
	}
	return errs
}
