// Package admin tem os handlers do painel, todos atrás do RequireAdmin.
package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Inovatum/site-vendas/internal/gateway"
	"github.com/Inovatum/site-vendas/internal/http/middleware"
	"github.com/Inovatum/site-vendas/internal/http/validation"
	"github.com/Inovatum/site-vendas/internal/modules/catalog"
	"github.com/Inovatum/site-vendas/internal/shared/apperr"
	"github.com/Inovatum/site-vendas/internal/storage"
)

type ProductsHandler struct {
	Catalog *catalog.Service
	Uploads storage.Storage
}

func NewProductsHandler(cat *catalog.Service, uploads storage.Storage) *ProductsHandler {
	return &ProductsHandler{Catalog: cat, Uploads: uploads}
}

type productReq struct {
	Name       string   `json:"name" binding:"required"`
	PriceCents int      `json:"price_cents" binding:"required,gte=1"`
	Image      string   `json:"image"`
	Image2     string   `json:"image_2"`
	Category   string   `json:"category"`
	Sizes      []string `json:"sizes"`
	Stock      int      `json:"stock" binding:"gte=0"`
	Status     string   `json:"status" binding:"omitempty,oneof=active inactive"`
}

func (r productReq) input() gateway.ProductInput {
	status := r.Status
	if status == "" {
		status = gateway.StatusActive
	}
	return gateway.ProductInput{
		Name:       r.Name,
		PriceCents: r.PriceCents,
		Image:      r.Image,
		Image2:     r.Image2,
		Category:   r.Category,
		Sizes:      r.Sizes,
		Stock:      r.Stock,
		Status:     status,
	}
}

// List: GET /api/admin/products — todos, inclusive inativos.
func (h *ProductsHandler) List(c *gin.Context) {
	products, err := h.Catalog.Products(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Create: POST /api/admin/products
func (h *ProductsHandler) Create(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Dados do produto inválidos.", validation.FromBindError(err, &req)))
		return
	}

	p, err := h.Catalog.CreateProduct(c.Request.Context(), req.input())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Update: PUT /api/admin/products/:id
func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Dados do produto inválidos.", validation.FromBindError(err, &req)))
		return
	}

	if err := h.Catalog.UpdateProduct(c.Request.Context(), id, req.input()); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete: DELETE /api/admin/products/:id
func (h *ProductsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Toggle: POST /api/admin/products/:id/toggle — alterna active/inactive.
func (h *ProductsHandler) Toggle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	status, err := h.Catalog.ToggleProductStatus(c.Request.Context(), id)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// UploadImage: POST /api/admin/products/images (multipart, campo image).
// Devolve a URL pública para gravar no produto.
func (h *ProductsHandler) UploadImage(c *gin.Context) {
	uploadFile(c, h.Uploads, "image", storage.KindProduct)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.Fail(c, apperr.InvalidErr("Identificador inválido.", nil))
		return 0, false
	}
	return id, true
}
