// Package handler provides the HTTP handlers for the farms feature.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"farmgrocery/internal/app/guard"
	"farmgrocery/internal/feature/farms/domain/entity"
	"farmgrocery/internal/feature/farms/usecase"
	"farmgrocery/internal/platform/logger"
	"farmgrocery/internal/platform/session"
	"farmgrocery/internal/platform/view"
)

// FarmUsecase defines the farm operations this handler needs.
type FarmUsecase interface {
	List(ctx context.Context) ([]entity.Farm, error)
	Create(ctx context.Context, in usecase.CreateFarmInput, authorID uint) (*entity.Farm, error)
	Get(ctx context.Context, id uint) (*usecase.FarmDetail, error)
	Delete(ctx context.Context, id uint) error
}

// FarmHandler handles the farm pages.
type FarmHandler struct {
	farms FarmUsecase
}

// NewFarmHandler creates a new instance of FarmHandler.
func NewFarmHandler(farms FarmUsecase) *FarmHandler {
	return &FarmHandler{farms: farms}
}

// Index renders the farm list.
func (h *FarmHandler) Index(c *gin.Context) {
	farms, err := h.farms.List(c.Request.Context())
	if err != nil {
		logger.FromContext(c).Error("failed to list farms", zap.Error(err))
		view.ServerError(c)
		return
	}
	view.HTML(c, http.StatusOK, "farms/index", gin.H{"Farms": farms})
}

// NewForm renders the new-farm form.
func (h *FarmHandler) NewForm(c *gin.Context) {
	view.HTML(c, http.StatusOK, "farms/new", nil)
}

// Create persists a farm owned by the current user.
func (h *FarmHandler) Create(c *gin.Context) {
	in := usecase.CreateFarmInput{
		Name:  c.PostForm("name"),
		City:  c.PostForm("city"),
		Email: c.PostForm("email"),
	}

	user := session.CurrentUser(c)
	if _, err := h.farms.Create(c.Request.Context(), in, user.ID); err != nil {
		if errors.Is(err, usecase.ErrInvalidFarm) {
			session.Flash(c, "error", err.Error())
			c.Redirect(http.StatusFound, "/farms/new")
			return
		}
		logger.FromContext(c).Error("failed to create farm", zap.Error(err))
		view.ServerError(c)
		return
	}

	session.Flash(c, "success", "Farm created!")
	c.Redirect(http.StatusFound, "/farms")
}

// Show renders a farm with its author and products populated.
// A bad or unknown id is a 404, not a server error.
func (h *FarmHandler) Show(c *gin.Context) {
	id, err := guard.ParseID(c.Param("id"))
	if err != nil {
		view.NotFound(c)
		return
	}

	detail, err := h.farms.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrFarmNotFound) {
			view.NotFound(c)
			return
		}
		logger.FromContext(c).Error("failed to load farm", zap.Uint("farm_id", id), zap.Error(err))
		view.ServerError(c)
		return
	}

	view.HTML(c, http.StatusOK, "farms/show", gin.H{
		"Farm":     detail.Farm,
		"Author":   detail.Author,
		"Products": detail.Products,
	})
}

// Delete removes the guard-attached farm. Its products are left behind
// as orphans on purpose.
func (h *FarmHandler) Delete(c *gin.Context) {
	farm := guard.FarmFromContext(c)
	if farm == nil {
		view.NotFound(c)
		return
	}

	if err := h.farms.Delete(c.Request.Context(), farm.ID); err != nil {
		logger.FromContext(c).Error("failed to delete farm", zap.Uint("farm_id", farm.ID), zap.Error(err))
		view.ServerError(c)
		return
	}

	session.Flash(c, "success", fmt.Sprintf("Deleted %s!", farm.Name))
	c.Redirect(http.StatusFound, "/farms")
}
