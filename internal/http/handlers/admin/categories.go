package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Inovatum/site-vendas/internal/gateway"
	"github.com/Inovatum/site-vendas/internal/http/middleware"
	"github.com/Inovatum/site-vendas/internal/http/validation"
	"github.com/Inovatum/site-vendas/internal/modules/catalog"
	"github.com/Inovatum/site-vendas/internal/shared/apperr"
)

type CategoriesHandler struct {
	Catalog *catalog.Service
}

func NewCategoriesHandler(cat *catalog.Service) *CategoriesHandler {
	return &CategoriesHandler{Catalog: cat}
}

type categoryReq struct {
	Name         string `json:"name" binding:"required"`
	DisplayOrder int    `json:"display_order" binding:"gte=0"`
	IsActive     *bool  `json:"is_active"`
}

func (r categoryReq) input() gateway.CategoryInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return gateway.CategoryInput{Name: r.Name, DisplayOrder: r.DisplayOrder, IsActive: active}
}

// List: GET /api/admin/categories
func (h *CategoriesHandler) List(c *gin.Context) {
	categories, err := h.Catalog.Categories(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Create: POST /api/admin/categories
func (h *CategoriesHandler) Create(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Dados da categoria inválidos.", validation.FromBindError(err, &req)))
		return
	}

	cat, err := h.Catalog.CreateCategory(c.Request.Context(), req.input())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// Update: PUT /api/admin/categories/:id
func (h *CategoriesHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Dados da categoria inválidos.", validation.FromBindError(err, &req)))
		return
	}

	if err := h.Catalog.UpdateCategory(c.Request.Context(), id, req.input()); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete: DELETE /api/admin/categories/:id
func (h *CategoriesHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
