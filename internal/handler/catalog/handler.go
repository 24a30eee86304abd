package catalog

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/internal/repository"
	"github.com/petcareapp/portal-api/internal/service/catalog"
	"github.com/petcareapp/portal-api/pkg/errors"
	"github.com/petcareapp/portal-api/pkg/httputil"
)

type Handler struct {
	service catalog.CatalogService
}

func NewHandler(service catalog.CatalogService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/offers", h.ListOffers)
		products.GET("/:id", h.GetProduct)
	}
	rg.GET("/categories", h.ListCategories)
	rg.GET("/brands", h.ListBrands)
	rg.GET("/services", h.ListServices)
}

func (h *Handler) ListProducts(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	products, err := h.service.ListProducts(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, newProductViews(products))
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid product ID", err))
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, newProductView(*product))
}

func (h *Handler) ListOffers(c *gin.Context) {
	offers, err := h.service.ListOffers(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, newProductViews(offers))
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, categories)
}

func (h *Handler) ListBrands(c *gin.Context) {
	brands, err := h.service.ListBrands(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, brands)
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	views := make([]serviceView, 0, len(services))
	for _, s := range services {
		views = append(views, newServiceView(s))
	}
	httputil.RespondWithSuccess(c, views)
}

func filterFromQuery(c *gin.Context) (repository.ProductFilter, error) {
	var filter repository.ProductFilter

	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, errors.NewBadRequest("invalid category ID", err)
		}
		filter.CategoryID = id
	}
	if raw := c.Query("brand"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, errors.NewBadRequest("invalid brand ID", err)
		}
		filter.BrandID = id
	}
	filter.Search = c.Query("search")
	filter.InStock = c.Query("in_stock") == "true"
	return filter, nil
}

// productView carries the product plus its derived presentation fields so
// storefront clients render prices and stock states without local logic.
type productView struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	SKU                string          `json:"sku"`
	Description        string          `json:"description"`
	Brand              *model.Brand    `json:"brand,omitempty"`
	Category           *model.Category `json:"category,omitempty"`
	Price              model.Money     `json:"price"`
	PriceLabel         string          `json:"price_label"`
	FinalPrice         model.Money     `json:"final_price"`
	FinalPriceLabel    string          `json:"final_price_label"`
	HasDiscount        bool            `json:"has_discount"`
	DiscountPercentage int             `json:"discount_percentage"`
	TotalStock         int             `json:"total_stock"`
	InStock            bool            `json:"in_stock"`
	LowStock           bool            `json:"low_stock"`
	StockLabel         string          `json:"stock_label"`
	StockColor         string          `json:"stock_color"`
	Image              string          `json:"image,omitempty"`
}

func newProductView(p model.Product) productView {
	return productView{
		ID:                 p.ID,
		Name:               p.Name,
		SKU:                p.SKU,
		Description:        p.Description,
		Brand:              p.Brand,
		Category:           p.Category,
		Price:              p.Price,
		PriceLabel:         p.Price.Format(),
		FinalPrice:         p.FinalPrice,
		FinalPriceLabel:    p.FinalPrice.Format(),
		HasDiscount:        p.HasDiscount(),
		DiscountPercentage: p.DiscountPercentage(),
		TotalStock:         p.TotalStock,
		InStock:            p.IsInStock(),
		LowStock:           p.IsLowStock(),
		StockLabel:         p.StockLabel(),
		StockColor:         p.StockColor(),
		Image:              p.Image,
	}
}

func newProductViews(products []model.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return views
}

type serviceView struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Price           model.Money `json:"price"`
	PriceLabel      string      `json:"price_label"`
	DurationMinutes int         `json:"duration_minutes"`
}

func newServiceView(s model.Service) serviceView {
	return serviceView{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		PriceLabel:      s.Price.Format(),
		DurationMinutes: s.DurationMinutes,
	}
}
