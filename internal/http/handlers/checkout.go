package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Inovatum/site-vendas/internal/http/cartid"
	"github.com/Inovatum/site-vendas/internal/http/middleware"
	"github.com/Inovatum/site-vendas/internal/http/validation"
	"github.com/Inovatum/site-vendas/internal/modules/checkout"
	"github.com/Inovatum/site-vendas/internal/shared/apperr"
	"github.com/Inovatum/site-vendas/pkg/view"
)

type CheckoutHandler struct {
	CK       *cartid.Codec
	Checkout *checkout.Service
}

func NewCheckoutHandler(ck *cartid.Codec, co *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{CK: ck, Checkout: co}
}

type checkoutReq struct {
	Method string `json:"method" binding:"required,oneof=whatsapp pix"`
}

// Finalize: POST /api/checkout
func (h *CheckoutHandler) Finalize(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Escolha whatsapp ou pix.", validation.FromBindError(err, &req)))
		return
	}

	cartID := h.CK.Ensure(c)
	res, err := h.Checkout.Finalize(c.Request.Context(), cartID, req.Method)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	out := view.CheckoutResult{
		Method:     res.Method,
		TotalCents: res.TotalCents,
		Total:      view.FormatBRL(res.TotalCents),
	}
	switch res.Method {
	case checkout.MethodWhatsApp:
		out.WhatsAppURL = res.WhatsAppURL
	case checkout.MethodPix:
		out.PixCode = res.Pix.Code
		out.PixQRCodeBase64 = res.Pix.QRCodeBase64
		out.PixExpiresInSecs = res.Pix.ExpiresInSeconds
	}
	c.JSON(http.StatusOK, out)
}
