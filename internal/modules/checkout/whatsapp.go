package checkout

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Inovatum/site-vendas/internal/modules/cart"
	"github.com/Inovatum/site-vendas/internal/modules/settings"
	"github.com/Inovatum/site-vendas/pkg/view"
)

// ComposeWhatsAppMessage monta o texto do pedido enviado ao lojista.
// O formato é contrato com quem recebe: cabeçalho com o nome da loja,
// uma seção por item, total, linha de desconto quando há cupom e o
// total final.
func ComposeWhatsAppMessage(items []cart.Item, storeName string, coupon *settings.Coupon, discountCents int) string {
	var b strings.Builder
	b.WriteString("🛍️ *Pedido " + storeName + "*\n\n")

	lines := make([]string, 0, len(items))
	for _, it := range items {
		var l strings.Builder
		l.WriteString("• " + it.Name + "\n")
		if it.Size != "" {
			l.WriteString("  Tamanho: " + it.Size + "\n")
		}
		l.WriteString("  Quantidade: " + strconv.Itoa(it.Quantity) + "\n")
		l.WriteString("  Preço unitário: " + view.FormatBRL(it.PriceCents) + "\n")
		l.WriteString("  Subtotal: " + view.FormatBRL(it.SubtotalCents()) + "\n")
		lines = append(lines, l.String())
	}
	b.WriteString(strings.Join(lines, "\n"))

	subtotal := 0
	for _, it := range items {
		subtotal += it.SubtotalCents()
	}
	b.WriteString("\n💰 *Total: " + view.FormatBRL(subtotal) + "*\n")
	if coupon != nil {
		b.WriteString("Desconto (" + coupon.Code + "): -" + view.FormatBRL(discountCents) + "\n")
	}
	final := subtotal - discountCents
	if final < 0 {
		final = 0
	}
	b.WriteString("*Total Final: " + view.FormatBRL(final) + "*\n\n")
	b.WriteString("Gostaria de finalizar este pedido!")
	return b.String()
}

// WhatsAppURL monta o deep link wa.me. QueryEscape usa '+' para espaço;
// o WhatsApp espera %20.
func WhatsAppURL(number, message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + number + "?text=" + encoded
}
