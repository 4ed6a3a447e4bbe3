package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Inovatum/site-vendas/internal/http/cartid"
	"github.com/Inovatum/site-vendas/internal/http/middleware"
	"github.com/Inovatum/site-vendas/internal/http/validation"
	"github.com/Inovatum/site-vendas/internal/modules/cart"
	"github.com/Inovatum/site-vendas/internal/modules/checkout"
	"github.com/Inovatum/site-vendas/internal/modules/coupon"
	"github.com/Inovatum/site-vendas/internal/modules/settings"
	"github.com/Inovatum/site-vendas/internal/shared/apperr"
	"github.com/Inovatum/site-vendas/pkg/view"
)

type CartHandler struct {
	CK       *cartid.Codec
	Carts    *cart.Service
	Settings *settings.Service
	Coupons  *coupon.Engine
	Checkout *checkout.Service
}

func NewCartHandler(ck *cartid.Codec, carts *cart.Service, st *settings.Service, eng *coupon.Engine, co *checkout.Service) *CartHandler {
	return &CartHandler{CK: ck, Carts: carts, Settings: st, Coupons: eng, Checkout: co}
}

// Show: GET /api/cart
func (h *CartHandler) Show(c *gin.Context) {
	cartID := h.CK.Ensure(c)
	c.JSON(http.StatusOK, h.page(cartID))
}

type addItemReq struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" binding:"omitempty,gte=1"`
}

// AddItem: POST /api/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Dados inválidos.", validation.FromBindError(err, &req)))
		return
	}

	cartID := h.CK.Ensure(c)
	if err := h.Carts.AddToCart(c.Request.Context(), cartID, req.ProductID, req.Size, req.Quantity); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.page(cartID))
}

type updateItemReq struct {
	Quantity int `json:"quantity"`
}

// UpdateItem: PATCH /api/cart/items/:id — quantidade zero remove.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Identificador de produto inválido.", nil))
		return
	}
	var req updateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Dados inválidos.", validation.FromBindError(err, &req)))
		return
	}

	cartID := h.CK.Ensure(c)
	if err := h.Carts.UpdateQuantity(cartID, productID, req.Quantity); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.page(cartID))
}

// RemoveItem: DELETE /api/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Identificador de produto inválido.", nil))
		return
	}

	cartID := h.CK.Ensure(c)
	if err := h.Carts.Remove(cartID, productID); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.page(cartID))
}

// Clear: DELETE /api/cart — esvazia tudo (pós-pagamento PIX confirmado).
func (h *CartHandler) Clear(c *gin.Context) {
	cartID := h.CK.Ensure(c)
	h.Carts.Clear(cartID)
	c.JSON(http.StatusOK, h.page(cartID))
}

type applyCouponReq struct {
	Code string `json:"code" binding:"required"`
}

// ApplyCoupon: POST /api/cart/coupon. Código que não casa também
// derruba o cupom aplicado antes.
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req applyCouponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Informe o código do cupom.", validation.FromBindError(err, &req)))
		return
	}

	cartID := h.CK.Ensure(c)
	st, err := h.Settings.Fetch(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.UnavailableErr("Sem conexão com o servidor. Tente novamente."))
		return
	}

	applied, err := h.Coupons.Apply(st, req.Code)
	if err != nil {
		h.Carts.RemoveCoupon(cartID)
		middleware.Fail(c, applyError(err))
		return
	}

	h.Carts.SetCoupon(cartID, applied)
	c.JSON(http.StatusOK, h.page(cartID))
}

// RemoveCoupon: DELETE /api/cart/coupon
func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	cartID := h.CK.Ensure(c)
	h.Carts.RemoveCoupon(cartID)
	c.JSON(http.StatusOK, h.page(cartID))
}

func applyError(err error) error {
	switch {
	case errors.Is(err, coupon.ErrExpired):
		return apperr.InvalidErr("Este cupom já expirou.", nil)
	case errors.Is(err, coupon.ErrExhausted):
		return apperr.ConflictErr("Este cupom já atingiu o limite de usos.")
	case errors.Is(err, coupon.ErrInvalid):
		return apperr.InvalidErr("O cupom digitado não é válido.", nil)
	default:
		return apperr.Wrap(err)
	}
}

// page monta a resposta padrão do carrinho, com o desconto calculado a
// partir do cupom congelado no apply.
func (h *CartHandler) page(cartID string) view.CartPage {
	snap := h.Carts.Get(cartID)

	items := make([]view.CartItem, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, view.CartItem{
			ProductID:     it.ProductID,
			Name:          it.Name,
			PriceCents:    it.PriceCents,
			Size:          it.Size,
			Image:         it.Image,
			Quantity:      it.Quantity,
			SubtotalCents: it.SubtotalCents(),
		})
	}

	subtotal := snap.SubtotalCents()
	discount := 0
	code := ""
	if snap.Coupon != nil {
		discount = coupon.DiscountCents(*snap.Coupon, subtotal)
		code = snap.Coupon.Code
	}
	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	page := view.CartPage{
		Items:          items,
		ItemsCount:     snap.ItemsCount(),
		SubtotalCents:  subtotal,
		Subtotal:       view.FormatBRL(subtotal),
		CouponCode:     code,
		DiscountCents:  discount,
		TotalCents:     total,
		Total:          view.FormatBRL(total),
		GeneratingPix:  snap.GeneratingPix,
		CheckoutLocked: h.Checkout.Disabled(cartID),
	}
	if discount > 0 {
		page.Discount = view.FormatBRL(discount)
	}
	return page
}
