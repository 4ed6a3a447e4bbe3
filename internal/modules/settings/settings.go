// Package settings cuida da linha única store_settings: identidade da
// loja, rodapé, número do WhatsApp e os cupons de desconto.
//
// O backend guarda os cupons como três grupos de campos planos
// (coupon_code_1..3 etc.); aqui eles viram uma lista ordenada — a ordem
// dos slots é a precedência de casamento de código.
package settings

import (
	"strings"
	"time"

	"github.com/Inovatum/site-vendas/internal/gateway"
)

// MaxCouponSlots é o número de slots de cupom que a linha comporta.
const MaxCouponSlots = 3

type CouponType string

const (
	Percentage CouponType = "percentage"
	Fixed      CouponType = "fixed"
)

// Coupon é um slot de cupom. Value é fração em [0,1] para percentage e
// valor em reais para fixed. UsageLimit nil significa ilimitado.
type Coupon struct {
	Code       string      `json:"code"`
	Type       CouponType  `json:"type"`
	Value      *float64    `json:"value"`
	Expiration *time.Time  `json:"expiration,omitempty"`
	UsageLimit *int        `json:"usage_limit,omitempty"`
}

// Usable: o slot tem tipo e valor preenchidos (pré-condição de casamento;
// expiração e limite são checados depois, com mensagens próprias).
func (c Coupon) Usable() bool {
	return c.Code != "" && c.Type != "" && c.Value != nil
}

func (c Coupon) Expired(now time.Time) bool {
	return c.Expiration != nil && now.After(*c.Expiration)
}

func (c Coupon) Exhausted() bool {
	return c.UsageLimit != nil && *c.UsageLimit <= 0
}

type Settings struct {
	ID                int64    `json:"id"`
	StoreName         string   `json:"store_name"`
	WhatsAppNumber    string   `json:"whatsapp_number"`
	MonthlySales      int      `json:"monthly_sales"`
	FooterText        string   `json:"footer_text"`
	FooterCompanyName string   `json:"footer_company_name"`
	BrowserTabTitle   string   `json:"browser_tab_title"`
	FaviconURL        string   `json:"favicon_url"`
	PixCopyPaste      string   `json:"pix_copy_paste"`
	Coupons           []Coupon `json:"coupons"`
}

// FindCoupon procura o código (normalizado para maiúsculas) nos slots, na
// ordem. Slots sem tipo ou valor não casam.
func (s Settings) FindCoupon(code string) (Coupon, bool) {
	want := strings.ToUpper(strings.TrimSpace(code))
	if want == "" {
		return Coupon{}, false
	}
	for _, c := range s.Coupons {
		if strings.ToUpper(c.Code) == want && c.Usable() {
			return c, true
		}
	}
	return Coupon{}, false
}

// FromRow converte a linha plana do backend para o modelo com lista.
func FromRow(row gateway.SettingsRow) Settings {
	s := Settings{
		ID:                row.ID,
		StoreName:         row.StoreName,
		WhatsAppNumber:    row.WhatsAppNumber,
		MonthlySales:      row.MonthlySales,
		FooterText:        row.FooterText,
		FooterCompanyName: row.FooterCompanyName,
		BrowserTabTitle:   row.BrowserTabTitle,
		FaviconURL:        row.FaviconURL,
		PixCopyPaste:      row.PixCopyPaste,
	}

	slots := []struct {
		code       string
		typ        string
		value      *float64
		expiration *time.Time
		limit      *int
	}{
		{row.CouponCode1, row.CouponType1, row.CouponValue1, row.CouponExpiration1, row.CouponUsageLimit1},
		{row.CouponCode2, row.CouponType2, row.CouponValue2, row.CouponExpiration2, row.CouponUsageLimit2},
		{row.CouponCode3, row.CouponType3, row.CouponValue3, row.CouponExpiration3, row.CouponUsageLimit3},
	}
	for _, slot := range slots {
		if strings.TrimSpace(slot.code) == "" {
			continue
		}
		s.Coupons = append(s.Coupons, Coupon{
			Code:       slot.code,
			Type:       CouponType(slot.typ),
			Value:      slot.value,
			Expiration: slot.expiration,
			UsageLimit: slot.limit,
		})
	}
	return s
}

// Row achata a lista de volta para os campos do backend, preenchendo os
// slots vazios com nulos (código da loja nunca tem mais que MaxCouponSlots).
func (s Settings) Row() gateway.SettingsRow {
	row := gateway.SettingsRow{
		ID:                s.ID,
		StoreName:         s.StoreName,
		WhatsAppNumber:    s.WhatsAppNumber,
		MonthlySales:      s.MonthlySales,
		FooterText:        s.FooterText,
		FooterCompanyName: s.FooterCompanyName,
		BrowserTabTitle:   s.BrowserTabTitle,
		FaviconURL:        s.FaviconURL,
		PixCopyPaste:      s.PixCopyPaste,
	}

	coupons := s.Coupons
	if len(coupons) > MaxCouponSlots {
		coupons = coupons[:MaxCouponSlots]
	}
	for i, c := range coupons {
		switch i {
		case 0:
			row.CouponCode1, row.CouponType1 = c.Code, string(c.Type)
			row.CouponValue1, row.CouponExpiration1, row.CouponUsageLimit1 = c.Value, c.Expiration, c.UsageLimit
		case 1:
			row.CouponCode2, row.CouponType2 = c.Code, string(c.Type)
			row.CouponValue2, row.CouponExpiration2, row.CouponUsageLimit2 = c.Value, c.Expiration, c.UsageLimit
		case 2:
			row.CouponCode3, row.CouponType3 = c.Code, string(c.Type)
			row.CouponValue3, row.CouponExpiration3, row.CouponUsageLimit3 = c.Value, c.Expiration, c.UsageLimit
		}
	}
	return row
}
