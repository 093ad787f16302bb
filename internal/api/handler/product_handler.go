package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /products. The route is public; a valid bearer token only
// widens visibility (admins also see inactive products).
func (h *ProductHandler) List(c echo.Context) error {
	in := ports.ListProductsInput{
		Brand:  c.QueryParam("brand"),
		Search: c.QueryParam("search"),
		Sort:   c.QueryParam("sort"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 0),
	}
	if raw := c.QueryParam("category"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid category parameter")
		}
		in.CategoryID = &categoryID
	}
	if raw := c.QueryParam("featured"); raw != "" {
		featured := raw == "true" || raw == "1"
		in.Featured = &featured
	}

	return respond(c, h.service.List(c.Request().Context(), ctxOptionalIdentity(c), in))
}

// GetByID handles GET /products/:id.
func (h *ProductHandler) GetByID(c echo.Context) error {
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return respond(c, h.service.GetByID(c.Request().Context(), productID))
}

// Create handles POST /products.
func (h *ProductHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return invalidInput(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return invalidInput(c, err)
	}

	in := ports.CreateProductInput{
		Name:             req.Name,
		Slug:             req.Slug,
		Brand:            req.Brand,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		OriginalPrice:    req.OriginalPrice,
		Discount:         req.Discount,
		SKU:              req.SKU,
		Stock:            req.Stock,
		IsActive:         req.IsActive,
		IsFeatured:       req.IsFeatured,
		CategoryID:       req.CategoryID,
	}
	for _, img := range req.Images {
		in.Images = append(in.Images, ports.ProductImageInput{URL: img.URL, IsPrimary: img.IsPrimary})
	}

	return respond(c, h.service.Create(c.Request().Context(), id, in))
}

// Update handles PATCH /products/:id.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return invalidInput(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return invalidInput(c, err)
	}

	patch := ports.UpdateProductPatch{
		Name:             req.Name,
		Slug:             req.Slug,
		Brand:            req.Brand,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		OriginalPrice:    req.OriginalPrice,
		Discount:         req.Discount,
		SKU:              req.SKU,
		Stock:            req.Stock,
		IsActive:         req.IsActive,
		IsFeatured:       req.IsFeatured,
		CategoryID:       req.CategoryID,
	}

	return respond(c, h.service.Update(c.Request().Context(), id, productID, patch))
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return respond(c, h.service.Delete(c.Request().Context(), id, productID))
}
