// Package gateway fala com o backend hospedado: uma rows API relacional
// (tabelas products, categories, store_settings, store_customization,
// admin_users), duas funções chamáveis (validate_admin_login,
// decrement_coupon_usage) e a function de geração de PIX.
// Nenhum dado é persistido localmente; este serviço é só um cliente.
package gateway

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound: a tabela respondeu, mas a linha não existe.
	ErrNotFound = errors.New("gateway: row not found")
	// ErrUnavailable: falha de transporte — backend inalcançável.
	ErrUnavailable = errors.New("gateway: backend unavailable")
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Product struct {
	ID         int64
	Name       string
	PriceCents int
	Image      string
	Image2     string
	Category   string
	Sizes      []string
	Stock      int
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasSizes: produto exige escolha de tamanho antes de ir ao carrinho.
func (p Product) HasSizes() bool { return len(p.Sizes) > 0 }

type ProductInput struct {
	Name       string
	PriceCents int
	Image      string
	Image2     string
	Category   string
	Sizes      []string
	Stock      int
	Status     string
}

type Category struct {
	ID           int64
	Name         string
	DisplayOrder int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CategoryInput struct {
	Name         string
	DisplayOrder int
	IsActive     bool
}

// SettingsRow espelha a linha store_settings do backend, com os três
// slots de cupom ainda como campos planos. O módulo settings converte
// para a lista ordenada de cupons.
type SettingsRow struct {
	ID                int64
	StoreName         string
	WhatsAppNumber    string
	MonthlySales      int
	FooterText        string
	FooterCompanyName string
	BrowserTabTitle   string
	FaviconURL        string
	PixCopyPaste      string

	CouponCode1       string
	CouponType1       string
	CouponValue1      *float64
	CouponExpiration1 *time.Time
	CouponUsageLimit1 *int

	CouponCode2       string
	CouponType2       string
	CouponValue2      *float64
	CouponExpiration2 *time.Time
	CouponUsageLimit2 *int

	CouponCode3       string
	CouponType3       string
	CouponValue3      *float64
	CouponExpiration3 *time.Time
	CouponUsageLimit3 *int
}

// CustomizationRow espelha a linha store_customization (singleton).
type CustomizationRow struct {
	ID                  int64
	PrimaryColor        string
	SecondaryColor      string
	AccentColor         string
	BackgroundColor     string
	TextColor           string
	ButtonColor         string
	ButtonTextColor     string
	SiteBackgroundColor string
	CardBackgroundColor string
	CardBorderColor     string
	HeaderColor         string
	FooterColor         string
	CartColor           string
	MenuColor           string
	LogoURL             string
	LogoSize            string // small|medium|large
	ShowLogo            bool
	ShowStoreName       bool
	ThemeStyle          string // modern|classic|minimal
	CustomCSS           string
}

type AdminUser struct {
	ID       int64
	Username string
	Email    string
	FullName string
	IsActive bool
}

// Client é a visão que o resto da aplicação tem do backend hospedado.
// A implementação de produção é o restClient; memory.go fornece um
// substituto em memória para testes e para o mockbackend.
type Client interface {
	// Connected reflete o resultado da última chamada: qualquer falha de
	// transporte derruba a flag, qualquer sucesso levanta.
	Connected() bool
	Ping(ctx context.Context) error

	ListProducts(ctx context.Context) ([]Product, error)
	InsertProduct(ctx context.Context, in ProductInput) (Product, error)
	UpdateProduct(ctx context.Context, id int64, in ProductInput) error
	UpdateProductStatus(ctx context.Context, id int64, status string) error
	DeleteProduct(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]Category, error)
	InsertCategory(ctx context.Context, in CategoryInput) (Category, error)
	UpdateCategory(ctx context.Context, id int64, in CategoryInput) error
	DeleteCategory(ctx context.Context, id int64) error

	GetSettings(ctx context.Context) (SettingsRow, error)
	InsertSettings(ctx context.Context, row SettingsRow) (SettingsRow, error)
	UpdateSettings(ctx context.Context, row SettingsRow) error

	GetCustomization(ctx context.Context) (CustomizationRow, error)
	UpdateCustomization(ctx context.Context, row CustomizationRow) error

	// ValidateAdminLogin chama a função do backend; zero ou um registro.
	ValidateAdminLogin(ctx context.Context, username, password string) ([]AdminUser, error)
	// FindAdminUser consulta admin_users diretamente (tier 2 do login).
	FindAdminUser(ctx context.Context, username, passwordHash string) (AdminUser, error)
	// DecrementCouponUsage: true = uso registrado; false = cupom esgotado,
	// ilimitado sem contagem ou inexistente. O backend é a autoridade.
	DecrementCouponUsage(ctx context.Context, code string) (bool, error)
}
