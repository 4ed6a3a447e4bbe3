// Package checkout fecha o pedido: revalida o cupom contra as
// configurações frescas, resgata o limite de uso no backend e despacha
// para o WhatsApp ou para a geração de PIX.
package checkout

import (
	"context"
	"log/slog"

	"github.com/Inovatum/site-vendas/internal/modules/cart"
	"github.com/Inovatum/site-vendas/internal/modules/catalog"
	"github.com/Inovatum/site-vendas/internal/modules/coupon"
	"github.com/Inovatum/site-vendas/internal/modules/payments"
	"github.com/Inovatum/site-vendas/internal/modules/settings"
	"github.com/Inovatum/site-vendas/internal/shared/apperr"
)

const (
	MethodWhatsApp = "whatsapp"
	MethodPix      = "pix"
)

type Result struct {
	Method      string
	WhatsAppURL string
	Pix         *payments.PixCharge
	TotalCents  int
}

type Service struct {
	carts    *cart.Store
	settings *settings.Service
	coupons  *coupon.Engine
	pix      payments.Provider
	catalog  *catalog.Service
	logger   *slog.Logger
}

func NewService(carts *cart.Store, st *settings.Service, eng *coupon.Engine, pix payments.Provider, cat *catalog.Service, logger *slog.Logger) *Service {
	return &Service{carts: carts, settings: st, coupons: eng, pix: pix, catalog: cat, logger: logger}
}

// Finalize fecha o pedido da sessão pelo método pedido. O carrinho não
// é esvaziado aqui; o cliente limpa depois de confirmar o envio.
func (s *Service) Finalize(ctx context.Context, cartID, method string) (Result, error) {
	if method != MethodWhatsApp && method != MethodPix {
		return Result{}, apperr.InvalidErr("Método de pagamento desconhecido.", nil)
	}
	if !s.catalog.Connected() {
		return Result{}, apperr.UnavailableErr("Sem conexão com o servidor. Tente novamente.")
	}

	var snap cart.Cart
	s.carts.View(cartID, func(c cart.Cart) { snap = c })
	if snap.Empty() {
		return Result{}, apperr.InvalidErr("Seu carrinho está vazio.", nil)
	}

	// Configurações frescas: o cupom congelado no apply não é
	// autoridade, o slot atual é.
	fresh, err := s.settings.Refetch(ctx)
	if err != nil {
		return Result{}, apperr.UnavailableErr("Sem conexão com o servidor. Tente novamente.")
	}

	subtotal := snap.SubtotalCents()
	discount := 0
	var applied *settings.Coupon
	if snap.Coupon != nil {
		current, err := s.coupons.Revalidate(fresh, *snap.Coupon)
		if err != nil {
			s.dropCoupon(cartID)
			return Result{}, coupon.AsAppError(err, snap.Coupon.Code)
		}
		if current.UsageLimit != nil {
			if err := s.coupons.Redeem(ctx, current.Code); err != nil {
				s.dropCoupon(cartID)
				return Result{}, coupon.AsAppError(err, current.Code)
			}
			// Sincroniza o limite novo; falha aqui não desfaz o pedido.
			if _, err := s.settings.Refetch(ctx); err != nil {
				s.logger.Warn("settings refetch after redeem failed", "err", err)
			}
		}
		discount = coupon.DiscountCents(current, subtotal)
		applied = &current
	}

	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	switch method {
	case MethodWhatsApp:
		msg := ComposeWhatsAppMessage(snap.Items, storeName(fresh), applied, discount)
		return Result{
			Method:      MethodWhatsApp,
			WhatsAppURL: WhatsAppURL(whatsAppNumber(fresh), msg),
			TotalCents:  total,
		}, nil
	default:
		charge, err := s.generatePix(ctx, cartID, total, fresh)
		if err != nil {
			return Result{}, err
		}
		return Result{Method: MethodPix, Pix: &charge, TotalCents: total}, nil
	}
}

// Disabled diz se o botão de finalizar deve ficar travado: offline,
// carrinho vazio ou cupom aplicado que não vale mais contra o último
// snapshot de configurações.
func (s *Service) Disabled(cartID string) bool {
	if !s.catalog.Connected() {
		return true
	}
	var snap cart.Cart
	s.carts.View(cartID, func(c cart.Cart) { snap = c })
	if snap.Empty() || snap.GeneratingPix {
		return true
	}
	if snap.Coupon != nil {
		st, ok := s.settings.Current()
		if !ok {
			return true
		}
		if _, err := s.coupons.Revalidate(st, *snap.Coupon); err != nil {
			return true
		}
	}
	return false
}

// generatePix garante uma geração em voo por carrinho e cai para o
// código copia-e-cola fixo do lojista quando a function falha.
func (s *Service) generatePix(ctx context.Context, cartID string, totalCents int, st settings.Settings) (payments.PixCharge, error) {
	err := s.carts.Mutate(cartID, func(c *cart.Cart) error {
		if c.GeneratingPix {
			return apperr.ConflictErr("Geração de PIX já em andamento.")
		}
		c.GeneratingPix = true
		return nil
	})
	if err != nil {
		return payments.PixCharge{}, err
	}
	defer func() {
		_ = s.carts.Mutate(cartID, func(c *cart.Cart) error {
			c.GeneratingPix = false
			return nil
		})
	}()

	charge, err := s.pix.GeneratePix(ctx, totalCents)
	if err != nil {
		s.logger.Error("pix generation failed", "err", err)
		if st.PixCopyPaste != "" {
			return payments.StaticProvider{Code: st.PixCopyPaste}.GeneratePix(ctx, totalCents)
		}
		return payments.PixCharge{}, apperr.UnavailableErr("Não foi possível gerar o código PIX.")
	}
	return charge, nil
}

func (s *Service) dropCoupon(cartID string) {
	_ = s.carts.Mutate(cartID, func(c *cart.Cart) error {
		c.Coupon = nil
		return nil
	})
}

func storeName(st settings.Settings) string {
	if st.StoreName == "" {
		return "Minha Loja"
	}
	return st.StoreName
}

func whatsAppNumber(st settings.Settings) string {
	if st.WhatsAppNumber == "" {
		return "5511999999999"
	}
	return st.WhatsAppNumber
}
