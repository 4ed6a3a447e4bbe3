package gateway

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Memory é um Client em memória para testes e desenvolvimento local.
// Comporta-se como o backend hospedado, incluindo o decremento atômico
// de uso de cupom.
type Memory struct {
	mu sync.Mutex

	products      []Product
	categories    []Category
	settings      *SettingsRow
	customization *CustomizationRow
	admins        []memoryAdmin

	nextID int64

	// Offline simula queda de transporte: toda chamada devolve ErrUnavailable.
	Offline bool
	// LoginRPCErr força falha de transporte só na função de login (tier 1).
	LoginRPCErr bool
}

type memoryAdmin struct {
	user         AdminUser
	passwordHash string
}

func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

// NewMemorySeeded devolve um Memory com catálogo e configurações de exemplo.
func NewMemorySeeded() *Memory {
	m := NewMemory()
	m.SeedProduct(ProductInput{Name: "Camiseta Básica", PriceCents: 5000, Image: "/img/camiseta.jpg", Category: "Roupas", Sizes: []string{"P", "M", "G"}, Stock: 12, Status: StatusActive})
	m.SeedProduct(ProductInput{Name: "Perfume Floral", PriceCents: 3000, Image: "/img/perfume.jpg", Category: "Perfumes", Stock: 5, Status: StatusActive})
	m.SeedProduct(ProductInput{Name: "Jaqueta Antiga", PriceCents: 19900, Image: "/img/jaqueta.jpg", Category: "Roupas", Stock: 0, Status: StatusInactive})
	m.SeedCategory(CategoryInput{Name: "Roupas", DisplayOrder: 1, IsActive: true})
	m.SeedCategory(CategoryInput{Name: "Perfumes", DisplayOrder: 2, IsActive: true})
	m.SeedSettings(SettingsRow{StoreName: "Minha Loja", WhatsAppNumber: "5511999999999", BrowserTabTitle: "Minha Loja"})
	m.SeedCustomization(DefaultCustomization())
	return m
}

// DefaultCustomization: paleta padrão usada quando a linha ainda não existe.
func DefaultCustomization() CustomizationRow {
	return CustomizationRow{
		PrimaryColor:        "#e11d48",
		SecondaryColor:      "#f3f4f6",
		AccentColor:         "#f59e0b",
		BackgroundColor:     "#ffffff",
		TextColor:           "#1f2937",
		ButtonColor:         "#e11d48",
		ButtonTextColor:     "#ffffff",
		SiteBackgroundColor: "#f9fafb",
		CardBackgroundColor: "#ffffff",
		CardBorderColor:     "#e5e7eb",
		HeaderColor:         "#ffffff",
		FooterColor:         "#ffffff",
		CartColor:           "#ffffff",
		MenuColor:           "#ffffff",
		LogoSize:            "medium",
		ShowLogo:            true,
		ShowStoreName:       true,
		ThemeStyle:          "modern",
	}
}

func (m *Memory) SeedProduct(in ProductInput) Product {
	p, _ := m.InsertProduct(context.Background(), in)
	return p
}

func (m *Memory) SeedCategory(in CategoryInput) Category {
	c, _ := m.InsertCategory(context.Background(), in)
	return c
}

func (m *Memory) SeedSettings(row SettingsRow) SettingsRow {
	s, _ := m.InsertSettings(context.Background(), row)
	return s
}

func (m *Memory) SeedCustomization(row CustomizationRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row.ID = m.allocID()
	m.customization = &row
}

func (m *Memory) SeedAdmin(user AdminUser, passwordHash string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == 0 {
		user.ID = m.allocID()
	}
	m.admins = append(m.admins, memoryAdmin{user: user, passwordHash: passwordHash})
}

func (m *Memory) allocID() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *Memory) Connected() bool { return !m.Offline }

func (m *Memory) Ping(_ context.Context) error {
	if m.Offline {
		return ErrUnavailable
	}
	return nil
}

func (m *Memory) guard() error {
	if m.Offline {
		return ErrUnavailable
	}
	return nil
}

func (m *Memory) ListProducts(_ context.Context) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return nil, err
	}
	out := make([]Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *Memory) InsertProduct(_ context.Context, in ProductInput) (Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return Product{}, err
	}
	now := time.Now()
	p := Product{
		ID: m.allocID(), Name: in.Name, PriceCents: in.PriceCents, Image: in.Image,
		Image2: in.Image2, Category: in.Category, Sizes: in.Sizes, Stock: in.Stock,
		Status: in.Status, CreatedAt: now, UpdatedAt: now,
	}
	m.products = append(m.products, p)
	return p, nil
}

func (m *Memory) UpdateProduct(_ context.Context, id int64, in ProductInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return err
	}
	for i := range m.products {
		if m.products[i].ID == id {
			m.products[i].Name = in.Name
			m.products[i].PriceCents = in.PriceCents
			m.products[i].Image = in.Image
			m.products[i].Image2 = in.Image2
			m.products[i].Category = in.Category
			m.products[i].Sizes = in.Sizes
			m.products[i].Stock = in.Stock
			m.products[i].Status = in.Status
			m.products[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) UpdateProductStatus(_ context.Context, id int64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return err
	}
	for i := range m.products {
		if m.products[i].ID == id {
			m.products[i].Status = status
			m.products[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteProduct(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return err
	}
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) ListCategories(_ context.Context) ([]Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return nil, err
	}
	out := make([]Category, len(m.categories))
	copy(out, m.categories)
	return out, nil
}

func (m *Memory) InsertCategory(_ context.Context, in CategoryInput) (Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return Category{}, err
	}
	now := time.Now()
	c := Category{ID: m.allocID(), Name: in.Name, DisplayOrder: in.DisplayOrder, IsActive: in.IsActive, CreatedAt: now, UpdatedAt: now}
	m.categories = append(m.categories, c)
	return c, nil
}

func (m *Memory) UpdateCategory(_ context.Context, id int64, in CategoryInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return err
	}
	for i := range m.categories {
		if m.categories[i].ID == id {
			m.categories[i].Name = in.Name
			m.categories[i].DisplayOrder = in.DisplayOrder
			m.categories[i].IsActive = in.IsActive
			m.categories[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteCategory(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return err
	}
	for i := range m.categories {
		if m.categories[i].ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) GetSettings(_ context.Context) (SettingsRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return SettingsRow{}, err
	}
	if m.settings == nil {
		return SettingsRow{}, ErrNotFound
	}
	return *m.settings, nil
}

func (m *Memory) InsertSettings(_ context.Context, row SettingsRow) (SettingsRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return SettingsRow{}, err
	}
	row.ID = m.allocID()
	m.settings = &row
	return row, nil
}

func (m *Memory) UpdateSettings(_ context.Context, row SettingsRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return err
	}
	if m.settings == nil || m.settings.ID != row.ID {
		return ErrNotFound
	}
	*m.settings = row
	return nil
}

func (m *Memory) GetCustomization(_ context.Context) (CustomizationRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return CustomizationRow{}, err
	}
	if m.customization == nil {
		return CustomizationRow{}, ErrNotFound
	}
	return *m.customization, nil
}

func (m *Memory) UpdateCustomization(_ context.Context, row CustomizationRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return err
	}
	if m.customization == nil {
		row.ID = m.allocID()
	}
	m.customization = &row
	return nil
}

func (m *Memory) ValidateAdminLogin(_ context.Context, username, password string) ([]AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return nil, err
	}
	if m.LoginRPCErr {
		return nil, ErrUnavailable
	}
	for _, a := range m.admins {
		if a.user.IsActive && strings.EqualFold(a.user.Username, username) && a.passwordHash == password {
			return []AdminUser{a.user}, nil
		}
	}
	return []AdminUser{}, nil
}

func (m *Memory) FindAdminUser(_ context.Context, username, passwordHash string) (AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return AdminUser{}, err
	}
	for _, a := range m.admins {
		if a.user.IsActive && a.user.Username == username && a.passwordHash == passwordHash {
			return a.user, nil
		}
	}
	return AdminUser{}, ErrNotFound
}

// DecrementCouponUsage replica a função do backend: decrementa o limite do
// slot cujo código bate, dentro do lock, e devolve false quando já está em
// zero, quando o cupom é ilimitado (nada a contabilizar) ou não existe.
func (m *Memory) DecrementCouponUsage(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard(); err != nil {
		return false, err
	}
	if m.settings == nil {
		return false, nil
	}
	code = strings.ToUpper(strings.TrimSpace(code))

	slots := []struct {
		code  string
		limit **int
	}{
		{m.settings.CouponCode1, &m.settings.CouponUsageLimit1},
		{m.settings.CouponCode2, &m.settings.CouponUsageLimit2},
		{m.settings.CouponCode3, &m.settings.CouponUsageLimit3},
	}
	for _, s := range slots {
		if strings.ToUpper(s.code) != code || s.code == "" {
			continue
		}
		limit := *s.limit
		if limit == nil {
			return false, nil
		}
		if *limit <= 0 {
			return false, nil
		}
		next := *limit - 1
		*s.limit = &next
		return true, nil
	}
	return false, nil
}
