package view

// Product é a projeção pública de um produto da vitrine.
type Product struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	PriceCents int      `json:"price_cents"`
	Price      string   `json:"price"`
	Image      string   `json:"image,omitempty"`
	Image2     string   `json:"image_2,omitempty"`
	Category   string   `json:"category,omitempty"`
	Sizes      []string `json:"sizes,omitempty"`
	Stock      int      `json:"stock"`
	Status     string   `json:"status"`
}

type CartItem struct {
	ProductID     int64  `json:"product_id"`
	Name          string `json:"name"`
	PriceCents    int    `json:"price_cents"`
	Size          string `json:"size,omitempty"`
	Image         string `json:"image,omitempty"`
	Quantity      int    `json:"quantity"`
	SubtotalCents int    `json:"subtotal_cents"`
}

// CartPage é a resposta de GET /api/cart: linhas, totais e o cupom
// aplicado, já com o desconto calculado sobre o subtotal atual.
type CartPage struct {
	Items          []CartItem `json:"items"`
	ItemsCount     int        `json:"items_count"`
	SubtotalCents  int        `json:"subtotal_cents"`
	Subtotal       string     `json:"subtotal"`
	CouponCode     string     `json:"coupon_code,omitempty"`
	DiscountCents  int        `json:"discount_cents,omitempty"`
	Discount       string     `json:"discount,omitempty"`
	TotalCents     int        `json:"total_cents"`
	Total          string     `json:"total"`
	GeneratingPix  bool       `json:"generating_pix"`
	CheckoutLocked bool       `json:"checkout_locked"`
}

// CheckoutResult carrega o destino do pedido: URL do WhatsApp para o
// método whatsapp, cobrança PIX para o método pix.
type CheckoutResult struct {
	Method      string `json:"method"`
	WhatsAppURL string `json:"whatsapp_url,omitempty"`

	PixCode          string `json:"pix_code,omitempty"`
	PixQRCodeBase64  string `json:"pix_qr_code_base64,omitempty"`
	PixExpiresInSecs int    `json:"pix_expires_in_seconds,omitempty"`

	TotalCents int    `json:"total_cents"`
	Total      string `json:"total"`
}
