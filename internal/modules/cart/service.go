package cart

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Inovatum/site-vendas/internal/gateway"
	"github.com/Inovatum/site-vendas/internal/modules/catalog"
	"github.com/Inovatum/site-vendas/internal/modules/settings"
	"github.com/Inovatum/site-vendas/internal/shared/apperr"
)

type Service struct {
	store   *Store
	catalog *catalog.Service
	logger  *slog.Logger
}

func NewService(store *Store, cat *catalog.Service, logger *slog.Logger) *Service {
	return &Service{store: store, catalog: cat, logger: logger}
}

// Get devolve um snapshot do carrinho da sessão.
func (s *Service) Get(cartID string) Cart {
	var out Cart
	s.store.View(cartID, func(c Cart) { out = c })
	return out
}

// AddToCart valida o produto contra o catálogo antes de criar a linha.
// Offline, produto inativo ou tamanho faltando recusam a adição.
func (s *Service) AddToCart(ctx context.Context, cartID string, productID int64, size string, qty int) error {
	if !s.catalog.Connected() {
		return apperr.UnavailableErr("Sem conexão com o servidor. Tente novamente.")
	}
	if qty <= 0 {
		qty = 1
	}

	p, err := s.catalog.ProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return apperr.NotFoundErr("Produto não encontrado.")
		}
		return err
	}
	if p.Status != gateway.StatusActive {
		return apperr.InvalidErr("Produto indisponível.", nil)
	}
	if p.HasSizes() {
		if size == "" {
			return apperr.InvalidErr("Selecione um tamanho antes de adicionar.", nil)
		}
		if !hasSize(p.Sizes, size) {
			return apperr.InvalidErr("Tamanho inválido para este produto.", nil)
		}
	} else {
		size = ""
	}

	return s.store.Mutate(cartID, func(c *Cart) error {
		c.add(Item{
			ProductID:  p.ID,
			Name:       p.Name,
			PriceCents: p.PriceCents,
			Image:      p.Image,
			Size:       size,
			Quantity:   qty,
		})
		return nil
	})
}

// UpdateQuantity atua por id de produto, sem olhar tamanho; quantidade
// zero ou negativa remove a linha.
func (s *Service) UpdateQuantity(cartID string, productID int64, qty int) error {
	return s.store.Mutate(cartID, func(c *Cart) error {
		if !c.setQuantity(productID, qty) {
			return apperr.NotFoundErr("Item não está no carrinho.")
		}
		return nil
	})
}

func (s *Service) Remove(cartID string, productID int64) error {
	return s.store.Mutate(cartID, func(c *Cart) error {
		if !c.remove(productID) {
			return apperr.NotFoundErr("Item não está no carrinho.")
		}
		return nil
	})
}

// SetCoupon congela o cupom validado no apply.
func (s *Service) SetCoupon(cartID string, c settings.Coupon) {
	_ = s.store.Mutate(cartID, func(ct *Cart) error {
		cp := c
		ct.Coupon = &cp
		return nil
	})
}

func (s *Service) RemoveCoupon(cartID string) {
	_ = s.store.Mutate(cartID, func(ct *Cart) error {
		ct.Coupon = nil
		return nil
	})
}

// Clear esvazia itens, cupom e trava de PIX (pós-checkout).
func (s *Service) Clear(cartID string) {
	_ = s.store.Mutate(cartID, func(c *Cart) error {
		c.clear()
		return nil
	})
}

func hasSize(sizes []string, want string) bool {
	for _, s := range sizes {
		if s == want {
			return true
		}
	}
	return false
}
