// Package cart guarda os carrinhos em memória, um por cookie assinado.
// O carrinho nunca toca o backend; só o catálogo (para validar o
// produto) e o checkout leem dele.
package cart

import (
	"time"

	"github.com/Inovatum/site-vendas/internal/modules/settings"
)

// Item é uma linha do carrinho. A identidade da linha no momento de
// adicionar é (ProductID, Size); updates e remoção posteriores atuam
// só pelo ProductID.
type Item struct {
	ProductID  int64  `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int    `json:"price_cents"`
	Image      string `json:"image"`
	Size       string `json:"size,omitempty"`
	Quantity   int    `json:"quantity"`
}

func (i Item) SubtotalCents() int { return i.PriceCents * i.Quantity }

// Cart é o estado de uma sessão de compra.
type Cart struct {
	Items []Item `json:"items"`
	// Coupon é o cupom aplicado, congelado no momento do apply. O
	// checkout revalida contra as configurações frescas antes de usar.
	Coupon *settings.Coupon `json:"coupon,omitempty"`
	// GeneratingPix trava o botão de finalizar enquanto uma geração de
	// código PIX está em voo.
	GeneratingPix bool `json:"generating_pix"`

	touched time.Time
}

func (c *Cart) SubtotalCents() int {
	total := 0
	for _, it := range c.Items {
		total += it.SubtotalCents()
	}
	return total
}

// ItemsCount soma quantidades (badge do ícone do carrinho).
func (c *Cart) ItemsCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) Empty() bool { return len(c.Items) == 0 }

// add funde com a linha (id, size) existente ou anexa uma nova.
func (c *Cart) add(item Item) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID && c.Items[i].Size == item.Size {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// setQuantity atua em TODAS as linhas do produto (variantes de tamanho
// incluídas); quantidade <= 0 remove. Devolve false se nenhuma linha
// tinha esse produto.
func (c *Cart) setQuantity(productID int64, qty int) bool {
	if qty <= 0 {
		return c.remove(productID)
	}
	found := false
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = qty
			found = true
		}
	}
	return found
}

// remove tira todas as linhas do produto, qualquer tamanho.
func (c *Cart) remove(productID int64) bool {
	kept := c.Items[:0]
	found := false
	for _, it := range c.Items {
		if it.ProductID == productID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	c.Items = kept
	return found
}

func (c *Cart) clear() {
	c.Items = nil
	c.Coupon = nil
	c.GeneratingPix = false
}
