// Package handler provides the HTTP handlers for the products feature.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"farmgrocery/internal/app/guard"
	"farmgrocery/internal/feature/products/domain/entity"
	"farmgrocery/internal/feature/products/usecase"
	"farmgrocery/internal/platform/logger"
	"farmgrocery/internal/platform/session"
	"farmgrocery/internal/platform/view"
)

// ProductUsecase defines the product operations this handler needs.
type ProductUsecase interface {
	List(ctx context.Context, category string) ([]entity.Product, error)
	Get(ctx context.Context, id uint) (*usecase.ProductDetail, error)
	CreateUnderFarm(ctx context.Context, farmID, authorID uint, in usecase.ProductInput) (*entity.Product, error)
	Update(ctx context.Context, id uint, in usecase.ProductInput) (*entity.Product, error)
	Delete(ctx context.Context, id uint) (uint, error)
}

// ProductHandler handles the product pages.
type ProductHandler struct {
	products ProductUsecase
}

// NewProductHandler creates a new instance of ProductHandler.
func NewProductHandler(products ProductUsecase) *ProductHandler {
	return &ProductHandler{products: products}
}

// Index renders the product list, filtered to an exact category match
// when a category query parameter is present.
func (h *ProductHandler) Index(c *gin.Context) {
	category := c.Query("category")

	products, err := h.products.List(c.Request.Context(), category)
	if err != nil {
		logger.FromContext(c).Error("failed to list products", zap.Error(err))
		view.ServerError(c)
		return
	}

	label := category
	if label == "" {
		label = "All"
	}
	view.HTML(c, http.StatusOK, "products/index", gin.H{
		"Products":       products,
		"Category":       label,
		"ActiveCategory": category,
		"Categories":     entity.Categories,
	})
}

// Show renders a product with its parent farm's name. An orphaned
// product still renders; a bad or unknown id is a 404.
func (h *ProductHandler) Show(c *gin.Context) {
	id, err := guard.ParseID(c.Param("id"))
	if err != nil {
		view.NotFound(c)
		return
	}

	detail, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			view.NotFound(c)
			return
		}
		logger.FromContext(c).Error("failed to load product", zap.Uint("product_id", id), zap.Error(err))
		view.ServerError(c)
		return
	}

	view.HTML(c, http.StatusOK, "products/show", gin.H{
		"Product": detail.Product,
		"Farm":    detail.Farm,
	})
}

// NewForm renders the new-product form scoped to the guard-attached farm.
func (h *ProductHandler) NewForm(c *gin.Context) {
	farm := guard.FarmFromContext(c)
	if farm == nil {
		view.NotFound(c)
		return
	}
	view.HTML(c, http.StatusOK, "products/new", gin.H{
		"Farm":       farm,
		"Categories": entity.Categories,
	})
}

// Create persists a product under the guard-attached farm, owned by the
// current user, and appends it to the farm's product list.
func (h *ProductHandler) Create(c *gin.Context) {
	farm := guard.FarmFromContext(c)
	if farm == nil {
		view.NotFound(c)
		return
	}
	formURL := fmt.Sprintf("/farms/%d/products/new", farm.ID)

	in, ok := bindProductInput(c, formURL)
	if !ok {
		return
	}

	user := session.CurrentUser(c)
	if _, err := h.products.CreateUnderFarm(c.Request.Context(), farm.ID, user.ID, in); err != nil {
		if errors.Is(err, usecase.ErrInvalidProduct) {
			session.Flash(c, "error", err.Error())
			c.Redirect(http.StatusFound, formURL)
			return
		}
		logger.FromContext(c).Error("failed to create product", zap.Uint("farm_id", farm.ID), zap.Error(err))
		view.ServerError(c)
		return
	}

	session.Flash(c, "success", "Product added!")
	c.Redirect(http.StatusFound, fmt.Sprintf("/farms/%d", farm.ID))
}

// EditForm renders the edit form pre-filled with the guard-attached product.
func (h *ProductHandler) EditForm(c *gin.Context) {
	product := guard.ProductFromContext(c)
	if product == nil {
		view.NotFound(c)
		return
	}
	view.HTML(c, http.StatusOK, "products/edit", gin.H{
		"Product":    product,
		"Categories": entity.Categories,
	})
}

// Update overwrites every submitted field after re-validation.
func (h *ProductHandler) Update(c *gin.Context) {
	product := guard.ProductFromContext(c)
	if product == nil {
		view.NotFound(c)
		return
	}
	formURL := fmt.Sprintf("/products/%d/edit", product.ID)

	in, ok := bindProductInput(c, formURL)
	if !ok {
		return
	}

	if _, err := h.products.Update(c.Request.Context(), product.ID, in); err != nil {
		if errors.Is(err, usecase.ErrInvalidProduct) {
			session.Flash(c, "error", err.Error())
			c.Redirect(http.StatusFound, formURL)
			return
		}
		logger.FromContext(c).Error("failed to update product", zap.Uint("product_id", product.ID), zap.Error(err))
		view.ServerError(c)
		return
	}

	session.Flash(c, "success", "Product updated!")
	c.Redirect(http.StatusFound, fmt.Sprintf("/products/%d", product.ID))
}

// Delete removes the guard-attached product and redirects to its parent
// farm using the farm id captured before deletion. The id stays in the
// farm's product list, matching the marketplace's orphan semantics.
func (h *ProductHandler) Delete(c *gin.Context) {
	product := guard.ProductFromContext(c)
	if product == nil {
		view.NotFound(c)
		return
	}

	farmID, err := h.products.Delete(c.Request.Context(), product.ID)
	if err != nil {
		logger.FromContext(c).Error("failed to delete product", zap.Uint("product_id", product.ID), zap.Error(err))
		view.ServerError(c)
		return
	}

	session.Flash(c, "success", "Product deleted!")
	c.Redirect(http.StatusFound, fmt.Sprintf("/farms/%d", farmID))
}

// bindProductInput reads the product form fields. A non-numeric price is
// a validation failure flashed back to the given form, like any other.
func bindProductInput(c *gin.Context, formURL string) (usecase.ProductInput, bool) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		session.Flash(c, "error", "invalid product: price must be a number")
		c.Redirect(http.StatusFound, formURL)
		return usecase.ProductInput{}, false
	}

	return usecase.ProductInput{
		Name:     c.PostForm("name"),
		Price:    price,
		Category: c.PostForm("category"),
	}, true
}
