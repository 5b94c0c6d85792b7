package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/fekuna/goldsmith-catalog-service/internal/apperror"
	"github.com/fekuna/goldsmith-catalog-service/internal/httpx"
	"github.com/fekuna/goldsmith-catalog-service/internal/media"
	"github.com/fekuna/goldsmith-catalog-service/internal/product"
	"github.com/fekuna/goldsmith-catalog-service/internal/product/dto"
	"github.com/fekuna/goldsmith-catalog-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc            product.UseCase
	maxImageBytes int64
	logger        logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, maxImageBytes int64, log logger.ZapLogger) *ProductHandler {
	if maxImageBytes <= 0 {
		maxImageBytes = media.DefaultMaxImageBytes
	}
	return &ProductHandler{
		uc:            uc,
		maxImageBytes: maxImageBytes,
		logger:        log,
	}
}

func (h *ProductHandler) Register(g *echo.Group) {
	g.GET("/products", h.ListProducts)
	g.GET("/products/search", h.SearchProducts)
	g.POST("/products", h.CreateProduct)
	g.GET("/products/:id", h.GetProduct)
	g.PUT("/products/:id", h.UpdateProduct)
	g.DELETE("/products/:id", h.DeleteProduct)
}

// productForm is the multipart body shared by create and update. Numbers
// are checked for shape here; ranges are enforced by the use case.
type productForm struct {
	Name              string `form:"name" validate:"required"`
	Karat             string `form:"karat" validate:"required,oneof=24k 22k 18k"`
	ShortDescription  string `form:"shortDescription" validate:"required"`
	ProductID         string `form:"productId" validate:"required"`
	Weight            string `form:"weight" validate:"required,numeric"`
	MakingCostPercent string `form:"makingCostPercent" validate:"required,numeric"`
	WastagePercent    string `form:"wastagePercent" validate:"required,numeric"`
}

func (f *productForm) fields() dto.ProductFields {
	return dto.ProductFields{
		Name:              f.Name,
		ShortDescription:  f.ShortDescription,
		ProductID:         f.ProductID,
		Karat:             f.Karat,
		Weight:            f.Weight,
		MakingCostPercent: f.MakingCostPercent,
		WastagePercent:    f.WastagePercent,
	}
}

type listQuery struct {
	Karat    string `query:"karat" validate:"omitempty,oneof=24k 22k 18k"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"pageSize" validate:"omitempty,min=1,max=100"`
}

// ListProducts godoc
// @Summary      List products priced at the current gold rates
// @Description  Items whose karat has no rate keep their stored price and carry an "error" field.
// @Tags         Products
// @Produce      json
// @Param        karat     query string false "karat filter" Enums(24k, 22k, 18k)
// @Param        page      query int    false "page number"
// @Param        pageSize  query int    false "page size"
// @Success      200 {array} model.PricedProduct
// @Header       200 {integer} X-Total-Count "number of matching products"
// @Router       /api/products [get]
func (h *ProductHandler) ListProducts(c echo.Context) error {
	var q listQuery
	if err := c.Bind(&q); err != nil {
		return apperror.InvalidInput("Invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	products, total, err := h.uc.ListProducts(c.Request().Context(), &dto.ProductFilters{
		Karat:    q.Karat,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		return err
	}

	c.Response().Header().Set("X-Total-Count", strconv.Itoa(total))
	return c.JSON(http.StatusOK, products)
}

// SearchProducts godoc
// @Summary  Full-text product search
// @Tags     Products
// @Produce  json
// @Param    q      query string true  "search text"
// @Param    limit  query int    false "maximum results (default 20)"
// @Success  200 {array} model.PricedProduct
// @Failure  400 {object} httpx.MessageResponse
// @Router   /api/products/search [get]
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return apperror.InvalidInput("limit must be a number")
		}
		limit = n
	}

	products, err := h.uc.SearchProducts(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// CreateProduct godoc
// @Summary  Add a product
// @Tags     Products
// @Accept   multipart/form-data
// @Produce  json
// @Param    name               formData string true  "product name"
// @Param    karat              formData string true  "karat" Enums(24k, 22k, 18k)
// @Param    shortDescription   formData string true  "short description"
// @Param    productId          formData string true  "external product id"
// @Param    weight             formData number true  "weight in grams"
// @Param    makingCostPercent  formData number true  "making cost percent"
// @Param    wastagePercent     formData number true  "wastage percent"
// @Param    image              formData file   false "product image"
// @Success  201 {object} model.Product
// @Failure  400 {object} httpx.MessageResponse
// @Failure  500 {object} httpx.MessageResponse
// @Router   /api/products [post]
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	form, image, err := h.bindProduct(c)
	if err != nil {
		return err
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), &dto.CreateProductInput{
		ProductFields: form.fields(),
		Image:         image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// GetProduct godoc
// @Summary  Get a product priced at the current gold rate
// @Tags     Products
// @Produce  json
// @Param    id  path string true "product id"
// @Success  200 {object} model.PricedProduct
// @Failure  400 {object} httpx.MessageResponse "gold rate not set"
// @Failure  404 {object} httpx.MessageResponse
// @Router   /api/products/{id} [get]
func (h *ProductHandler) GetProduct(c echo.Context) error {
	p, err := h.uc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// UpdateProduct godoc
// @Summary      Replace a product's fields
// @Description  All fields are overwritten and the price is recomputed. Without an image the stored one is kept.
// @Tags         Products
// @Accept       multipart/form-data
// @Produce      json
// @Param        id                 path     string true  "product id"
// @Param        name               formData string true  "product name"
// @Param        karat              formData string true  "karat" Enums(24k, 22k, 18k)
// @Param        shortDescription   formData string true  "short description"
// @Param        productId          formData string true  "external product id"
// @Param        weight             formData number true  "weight in grams"
// @Param        makingCostPercent  formData number true  "making cost percent"
// @Param        wastagePercent     formData number true  "wastage percent"
// @Param        image              formData file   false "product image"
// @Success      200 {object} model.Product
// @Failure      400 {object} httpx.MessageResponse
// @Failure      404 {object} httpx.MessageResponse
// @Failure      500 {object} httpx.MessageResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	form, image, err := h.bindProduct(c)
	if err != nil {
		return err
	}

	p, err := h.uc.UpdateProduct(c.Request().Context(), &dto.UpdateProductInput{
		ID:            c.Param("id"),
		ProductFields: form.fields(),
		Image:         image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteProduct godoc
// @Summary  Delete a product
// @Tags     Products
// @Produce  json
// @Param    id  path string true "product id"
// @Success  200 {object} httpx.MessageResponse
// @Failure  404 {object} httpx.MessageResponse
// @Router   /api/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	if err := h.uc.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, httpx.MessageResponse{Message: "Product deleted successfully"})
}

func (h *ProductHandler) bindProduct(c echo.Context) (*productForm, *media.File, error) {
	var form productForm
	if err := c.Bind(&form); err != nil {
		return nil, nil, apperror.InvalidInput("Unable to parse product form")
	}
	if err := c.Validate(&form); err != nil {
		return nil, nil, err
	}

	image, err := h.readImage(c)
	if err != nil {
		return nil, nil, err
	}
	return &form, image, nil
}

// readImage returns nil when the request carries no "image" part.
func (h *ProductHandler) readImage(c echo.Context) (*media.File, error) {
	header, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperror.InvalidInput("Unable to read image")
	}
	if header.Size > h.maxImageBytes {
		return nil, apperror.InvalidInput("Image exceeds the maximum allowed size")
	}

	src, err := header.Open()
	if err != nil {
		return nil, apperror.InvalidInput("Unable to read image")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxImageBytes+1))
	if err != nil {
		return nil, apperror.InvalidInput("Unable to read image")
	}

	file := media.File{
		Filename:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Data:        data,
	}
	if err := media.ValidateImage(file, h.maxImageBytes); err != nil {
		h.logger.Debug("rejected product image", zap.String("filename", file.Filename), zap.Error(err))
		return nil, apperror.InvalidInput("Only image files are allowed")
	}
	return &file, nil
}
