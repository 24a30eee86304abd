package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/internal/repository"
)

type productDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Barcode     *string `json:"barcode"`
	Brand       *int64  `json:"brand"`
	BrandName   string  `json:"brand_name"`
	Category    *int64  `json:"category"`
	CategoryName string `json:"category_name"`
	Description string  `json:"description"`
	Price       string  `json:"price"`
	FinalPrice  string  `json:"final_price"`
	TotalStock  int     `json:"total_stock"`
	Image       *string `json:"image"`
}

type categoryDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type brandDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// productListEnvelope tolerates both bare arrays and paginated
// {"results": [...]} responses from the backend.
type productListEnvelope struct {
	items []productDTO
}

func (e *productListEnvelope) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &e.items)
	}
	var paginated struct {
		Results []productDTO `json:"results"`
	}
	if err := json.Unmarshal(data, &paginated); err != nil {
		return err
	}
	e.items = paginated.Results
	return nil
}

type ProductRepository struct {
	client *Client
}

func NewProductRepository(client *Client) *ProductRepository {
	return &ProductRepository{client: client}
}

func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	query := url.Values{}
	if filter.CategoryID > 0 {
		query.Set("category", strconv.FormatInt(filter.CategoryID, 10))
	}
	if filter.BrandID > 0 {
		query.Set("brand", strconv.FormatInt(filter.BrandID, 10))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.InStock {
		query.Set("in_stock", "true")
	}

	var envelope productListEnvelope
	if err := r.client.get(ctx, pathProducts, query, &envelope); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]model.Product, 0, len(envelope.items))
	for _, dto := range envelope.items {
		product, err := mapProduct(dto)
		if err != nil {
			return nil, fmt.Errorf("map product %d: %w", dto.ID, err)
		}
		products = append(products, product)
	}
	return products, nil
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (*model.Product, error) {
	var dto productDTO
	if err := r.client.get(ctx, detailPath(pathProducts, id), nil, &dto); err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}

	product, err := mapProduct(dto)
	if err != nil {
		return nil, fmt.Errorf("map product %d: %w", id, err)
	}
	return &product, nil
}

// mapProduct is the total wire-to-domain mapping for catalog entries. The
// backend serializes prices as decimal strings; both go through the Money
// factory so malformed or negative values fail here, not at render time.
func mapProduct(dto productDTO) (model.Product, error) {
	price, err := model.MoneyFromString(dto.Price)
	if err != nil {
		return model.Product{}, fmt.Errorf("price: %w", err)
	}
	finalPrice, err := model.MoneyFromString(dto.FinalPrice)
	if err != nil {
		return model.Product{}, fmt.Errorf("final price: %w", err)
	}

	var brand *model.Brand
	if dto.Brand != nil {
		brand = &model.Brand{ID: *dto.Brand, Name: dto.BrandName}
	}
	var category *model.Category
	if dto.Category != nil {
		category = &model.Category{ID: *dto.Category, Name: dto.CategoryName}
	}

	return model.NewProduct(model.Product{
		ID:          dto.ID,
		Name:        dto.Name,
		SKU:         dto.SKU,
		Barcode:     stringOrEmpty(dto.Barcode),
		Brand:       brand,
		Category:    category,
		Description: dto.Description,
		Price:       price,
		FinalPrice:  finalPrice,
		TotalStock:  dto.TotalStock,
		Image:       stringOrEmpty(dto.Image),
	})
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type CategoryRepository struct {
	client *Client
}

func NewCategoryRepository(client *Client) *CategoryRepository {
	return &CategoryRepository{client: client}
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var dtos []categoryDTO
	if err := r.client.get(ctx, pathCategories, nil, &dtos); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]model.Category, 0, len(dtos))
	for _, dto := range dtos {
		categories = append(categories, model.Category{
			ID:          dto.ID,
			Name:        dto.Name,
			Description: dto.Description,
		})
	}
	return categories, nil
}

type BrandRepository struct {
	client *Client
}

func NewBrandRepository(client *Client) *BrandRepository {
	return &BrandRepository{client: client}
}

func (r *BrandRepository) List(ctx context.Context) ([]model.Brand, error) {
	var dtos []brandDTO
	if err := r.client.get(ctx, pathBrands, nil, &dtos); err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}

	brands := make([]model.Brand, 0, len(dtos))
	for _, dto := range dtos {
		brands = append(brands, model.Brand{ID: dto.ID, Name: dto.Name})
	}
	return brands, nil
}
