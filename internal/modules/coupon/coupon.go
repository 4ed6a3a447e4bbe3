// Package coupon aplica e revalida os cupons de desconto dos slots de
// store_settings. O servidor é a autoridade: o desconto só vale no
// checkout se o código ainda casar com as configurações frescas e, para
// cupons com limite, se o backend confirmar o decremento.
package coupon

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/Inovatum/site-vendas/internal/modules/settings"
)

var (
	// ErrInvalid: o código não casa com nenhum slot utilizável.
	ErrInvalid = errors.New("coupon: invalid code")
	// ErrExpired: o slot casa mas a data de expiração já passou.
	ErrExpired = errors.New("coupon: expired")
	// ErrExhausted: o limite de uso chegou a zero.
	ErrExhausted = errors.New("coupon: usage limit reached")
)

// Decrementer é a fatia do gateway que o engine usa no resgate.
type Decrementer interface {
	DecrementCouponUsage(ctx context.Context, code string) (bool, error)
}

type Engine struct {
	gw     Decrementer
	logger *slog.Logger
	now    func() time.Time
}

func NewEngine(gw Decrementer, logger *slog.Logger) *Engine {
	return &Engine{gw: gw, logger: logger, now: time.Now}
}

// Apply valida o código contra um snapshot de configurações e devolve o
// cupom casado. A ordem dos erros segue a checagem do apply: casamento,
// expiração, limite.
func (e *Engine) Apply(st settings.Settings, code string) (settings.Coupon, error) {
	c, ok := st.FindCoupon(code)
	if !ok {
		return settings.Coupon{}, ErrInvalid
	}
	if c.Expired(e.now()) {
		return settings.Coupon{}, ErrExpired
	}
	if c.Exhausted() {
		return settings.Coupon{}, ErrExhausted
	}
	return c, nil
}

// Revalidate confere no checkout se o cupom congelado no carrinho ainda
// vale contra as configurações frescas. O cupom devolvido é o slot
// atual, não o snapshot — valor e tipo podem ter mudado no admin.
func (e *Engine) Revalidate(fresh settings.Settings, applied settings.Coupon) (settings.Coupon, error) {
	return e.Apply(fresh, applied.Code)
}

// Redeem pede ao backend o decremento atômico do limite de uso. false
// sem erro significa que o limite acabou entre a revalidação e agora.
// Cupons sem limite nunca passam por aqui.
func (e *Engine) Redeem(ctx context.Context, code string) error {
	ok, err := e.gw.DecrementCouponUsage(ctx, code)
	if err != nil {
		e.logger.Warn("coupon decrement failed", "code", code, "err", err)
		return err
	}
	if !ok {
		return ErrExhausted
	}
	return nil
}

// DiscountCents calcula o desconto em centavos sobre o subtotal.
// Percentual arredonda meio para cima; fixo nunca desconta mais que o
// próprio subtotal.
func DiscountCents(c settings.Coupon, subtotalCents int) int {
	if c.Value == nil || subtotalCents <= 0 {
		return 0
	}
	var d int
	switch c.Type {
	case settings.Percentage:
		d = int(math.Round(float64(subtotalCents) * *c.Value))
	case settings.Fixed:
		d = int(math.Round(*c.Value * 100))
	default:
		return 0
	}
	if d < 0 {
		d = 0
	}
	if d > subtotalCents {
		d = subtotalCents
	}
	return d
}

// TotalCents é o subtotal menos o desconto, nunca negativo.
func TotalCents(c *settings.Coupon, subtotalCents int) int {
	if c == nil {
		return subtotalCents
	}
	t := subtotalCents - DiscountCents(*c, subtotalCents)
	if t < 0 {
		t = 0
	}
	return t
}
