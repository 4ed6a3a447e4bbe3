package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"
)

// restClient implementa Client contra a rows API hospedada
// (HTTP + JSON, query em parâmetros no estilo col=eq.valor).
type restClient struct {
	baseURL string
	anonKey string
	http    *http.Client

	connected atomic.Bool
}

type RestConfig struct {
	BaseURL string
	AnonKey string
	Timeout time.Duration
}

func NewRest(cfg RestConfig) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &restClient{
		baseURL: cfg.BaseURL,
		anonKey: cfg.AnonKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *restClient) Connected() bool { return c.connected.Load() }

func (c *restClient) Ping(ctx context.Context) error {
	var rows []json.RawMessage
	return c.get(ctx, "store_settings", url.Values{"select": {"id"}, "limit": {"1"}}, &rows)
}

// ---- wire rows -------------------------------------------------------

// Preços trafegam como decimais (reais); internamente tudo é em centavos.
type productRow struct {
	ID        int64     `json:"id,omitempty"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	Image2    *string   `json:"image_2"`
	Category  string    `json:"category"`
	Sizes     []string  `json:"sizes"`
	Stock     int       `json:"stock"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

func (r productRow) domain() Product {
	p := Product{
		ID:         r.ID,
		Name:       r.Name,
		PriceCents: centsFromDecimal(r.Price),
		Image:      r.Image,
		Category:   r.Category,
		Sizes:      r.Sizes,
		Stock:      r.Stock,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.Image2 != nil {
		p.Image2 = *r.Image2
	}
	return p
}

func productPayload(in ProductInput) map[string]any {
	payload := map[string]any{
		"name":     in.Name,
		"price":    decimalFromCents(in.PriceCents),
		"image":    in.Image,
		"category": in.Category,
		"sizes":    in.Sizes,
		"stock":    in.Stock,
		"status":   in.Status,
	}
	if in.Image2 != "" {
		payload["image_2"] = in.Image2
	} else {
		payload["image_2"] = nil
	}
	return payload
}

type categoryRow struct {
	ID           int64     `json:"id,omitempty"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

func (r categoryRow) domain() Category {
	return Category{ID: r.ID, Name: r.Name, DisplayOrder: r.DisplayOrder, IsActive: r.IsActive, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type settingsRow struct {
	ID                int64   `json:"id,omitempty"`
	StoreName         string  `json:"store_name"`
	WhatsAppNumber    string  `json:"whatsapp_number"`
	MonthlySales      int     `json:"monthly_sales"`
	FooterText        *string `json:"footer_text"`
	FooterCompanyName *string `json:"footer_company_name"`
	BrowserTabTitle   *string `json:"browser_tab_title"`
	FaviconURL        *string `json:"favicon_url"`
	PixCopyPaste      *string `json:"pix_copy_paste"`

	CouponCode1       *string    `json:"coupon_code_1"`
	CouponType1       *string    `json:"coupon_type_1"`
	CouponValue1      *float64   `json:"coupon_value_1"`
	CouponExpiration1 *time.Time `json:"coupon_expiration_1"`
	CouponUsageLimit1 *int       `json:"coupon_usage_limit_1"`

	CouponCode2       *string    `json:"coupon_code_2"`
	CouponType2       *string    `json:"coupon_type_2"`
	CouponValue2      *float64   `json:"coupon_value_2"`
	CouponExpiration2 *time.Time `json:"coupon_expiration_2"`
	CouponUsageLimit2 *int       `json:"coupon_usage_limit_2"`

	CouponCode3       *string    `json:"coupon_code_3"`
	CouponType3       *string    `json:"coupon_type_3"`
	CouponValue3      *float64   `json:"coupon_value_3"`
	CouponExpiration3 *time.Time `json:"coupon_expiration_3"`
	CouponUsageLimit3 *int       `json:"coupon_usage_limit_3"`
}

func (r settingsRow) domain() SettingsRow {
	return SettingsRow{
		ID:                r.ID,
		StoreName:         r.StoreName,
		WhatsAppNumber:    r.WhatsAppNumber,
		MonthlySales:      r.MonthlySales,
		FooterText:        strOrEmpty(r.FooterText),
		FooterCompanyName: strOrEmpty(r.FooterCompanyName),
		BrowserTabTitle:   strOrEmpty(r.BrowserTabTitle),
		FaviconURL:        strOrEmpty(r.FaviconURL),
		PixCopyPaste:      strOrEmpty(r.PixCopyPaste),

		CouponCode1: strOrEmpty(r.CouponCode1), CouponType1: strOrEmpty(r.CouponType1),
		CouponValue1: r.CouponValue1, CouponExpiration1: r.CouponExpiration1, CouponUsageLimit1: r.CouponUsageLimit1,
		CouponCode2: strOrEmpty(r.CouponCode2), CouponType2: strOrEmpty(r.CouponType2),
		CouponValue2: r.CouponValue2, CouponExpiration2: r.CouponExpiration2, CouponUsageLimit2: r.CouponUsageLimit2,
		CouponCode3: strOrEmpty(r.CouponCode3), CouponType3: strOrEmpty(r.CouponType3),
		CouponValue3: r.CouponValue3, CouponExpiration3: r.CouponExpiration3, CouponUsageLimit3: r.CouponUsageLimit3,
	}
}

func settingsPayload(row SettingsRow) map[string]any {
	payload := map[string]any{
		"store_name":          row.StoreName,
		"whatsapp_number":     row.WhatsAppNumber,
		"monthly_sales":       row.MonthlySales,
		"footer_text":         nullableStr(row.FooterText),
		"footer_company_name": nullableStr(row.FooterCompanyName),
		"browser_tab_title":   nullableStr(row.BrowserTabTitle),
		"favicon_url":         nullableStr(row.FaviconURL),
		"pix_copy_paste":      nullableStr(row.PixCopyPaste),

		"coupon_code_1": nullableStr(row.CouponCode1), "coupon_type_1": nullableStr(row.CouponType1),
		"coupon_value_1": row.CouponValue1, "coupon_expiration_1": row.CouponExpiration1, "coupon_usage_limit_1": row.CouponUsageLimit1,
		"coupon_code_2": nullableStr(row.CouponCode2), "coupon_type_2": nullableStr(row.CouponType2),
		"coupon_value_2": row.CouponValue2, "coupon_expiration_2": row.CouponExpiration2, "coupon_usage_limit_2": row.CouponUsageLimit2,
		"coupon_code_3": nullableStr(row.CouponCode3), "coupon_type_3": nullableStr(row.CouponType3),
		"coupon_value_3": row.CouponValue3, "coupon_expiration_3": row.CouponExpiration3, "coupon_usage_limit_3": row.CouponUsageLimit3,
	}
	return payload
}

type customizationRow struct {
	ID                  int64   `json:"id,omitempty"`
	PrimaryColor        string  `json:"primary_color"`
	SecondaryColor      string  `json:"secondary_color"`
	AccentColor         string  `json:"accent_color"`
	BackgroundColor     string  `json:"background_color"`
	TextColor           string  `json:"text_color"`
	ButtonColor         string  `json:"button_color"`
	ButtonTextColor     string  `json:"button_text_color"`
	SiteBackgroundColor string  `json:"site_background_color"`
	CardBackgroundColor string  `json:"card_background_color"`
	CardBorderColor     string  `json:"card_border_color"`
	HeaderColor         string  `json:"header_color"`
	FooterColor         string  `json:"footer_color"`
	CartColor           string  `json:"cart_color"`
	MenuColor           string  `json:"menu_color"`
	LogoURL             *string `json:"logo_url"`
	LogoSize            string  `json:"logo_size"`
	ShowLogo            bool    `json:"show_logo"`
	ShowStoreName       bool    `json:"show_store_name"`
	ThemeStyle          string  `json:"theme_style"`
	CustomCSS           *string `json:"custom_css"`
}

func (r customizationRow) domain() CustomizationRow {
	return CustomizationRow{
		ID:                  r.ID,
		PrimaryColor:        r.PrimaryColor,
		SecondaryColor:      r.SecondaryColor,
		AccentColor:         r.AccentColor,
		BackgroundColor:     r.BackgroundColor,
		TextColor:           r.TextColor,
		ButtonColor:         r.ButtonColor,
		ButtonTextColor:     r.ButtonTextColor,
		SiteBackgroundColor: r.SiteBackgroundColor,
		CardBackgroundColor: r.CardBackgroundColor,
		CardBorderColor:     r.CardBorderColor,
		HeaderColor:         r.HeaderColor,
		FooterColor:         r.FooterColor,
		CartColor:           r.CartColor,
		MenuColor:           r.MenuColor,
		LogoURL:             strOrEmpty(r.LogoURL),
		LogoSize:            r.LogoSize,
		ShowLogo:            r.ShowLogo,
		ShowStoreName:       r.ShowStoreName,
		ThemeStyle:          r.ThemeStyle,
		CustomCSS:           strOrEmpty(r.CustomCSS),
	}
}

func customizationPayload(row CustomizationRow) map[string]any {
	return map[string]any{
		"primary_color":         row.PrimaryColor,
		"secondary_color":       row.SecondaryColor,
		"accent_color":          row.AccentColor,
		"background_color":      row.BackgroundColor,
		"text_color":            row.TextColor,
		"button_color":          row.ButtonColor,
		"button_text_color":     row.ButtonTextColor,
		"site_background_color": row.SiteBackgroundColor,
		"card_background_color": row.CardBackgroundColor,
		"card_border_color":     row.CardBorderColor,
		"header_color":          row.HeaderColor,
		"footer_color":          row.FooterColor,
		"cart_color":            row.CartColor,
		"menu_color":            row.MenuColor,
		"logo_url":              nullableStr(row.LogoURL),
		"logo_size":             row.LogoSize,
		"show_logo":             row.ShowLogo,
		"show_store_name":       row.ShowStoreName,
		"theme_style":           row.ThemeStyle,
		"custom_css":            nullableStr(row.CustomCSS),
	}
}

type adminUserRow struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`
}

func (r adminUserRow) domain() AdminUser {
	return AdminUser{ID: r.ID, Username: r.Username, Email: r.Email, FullName: r.FullName, IsActive: r.IsActive}
}

// ---- products --------------------------------------------------------

func (c *restClient) ListProducts(ctx context.Context) ([]Product, error) {
	var rows []productRow
	q := url.Values{"select": {"*"}, "order": {"created_at.desc"}}
	if err := c.get(ctx, "products", q, &rows); err != nil {
		return nil, err
	}
	items := make([]Product, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.domain())
	}
	return items, nil
}

func (c *restClient) InsertProduct(ctx context.Context, in ProductInput) (Product, error) {
	var rows []productRow
	if err := c.insert(ctx, "products", productPayload(in), &rows); err != nil {
		return Product{}, err
	}
	if len(rows) == 0 {
		return Product{}, ErrNotFound
	}
	return rows[0].domain(), nil
}

func (c *restClient) UpdateProduct(ctx context.Context, id int64, in ProductInput) error {
	return c.update(ctx, "products", id, productPayload(in))
}

func (c *restClient) UpdateProductStatus(ctx context.Context, id int64, status string) error {
	return c.update(ctx, "products", id, map[string]any{"status": status})
}

func (c *restClient) DeleteProduct(ctx context.Context, id int64) error {
	return c.delete(ctx, "products", id)
}

// ---- categories ------------------------------------------------------

func (c *restClient) ListCategories(ctx context.Context) ([]Category, error) {
	var rows []categoryRow
	q := url.Values{"select": {"*"}, "order": {"display_order.asc"}}
	if err := c.get(ctx, "categories", q, &rows); err != nil {
		return nil, err
	}
	items := make([]Category, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.domain())
	}
	return items, nil
}

func (c *restClient) InsertCategory(ctx context.Context, in CategoryInput) (Category, error) {
	payload := map[string]any{"name": in.Name, "display_order": in.DisplayOrder, "is_active": in.IsActive}
	var rows []categoryRow
	if err := c.insert(ctx, "categories", payload, &rows); err != nil {
		return Category{}, err
	}
	if len(rows) == 0 {
		return Category{}, ErrNotFound
	}
	return rows[0].domain(), nil
}

func (c *restClient) UpdateCategory(ctx context.Context, id int64, in CategoryInput) error {
	payload := map[string]any{"name": in.Name, "display_order": in.DisplayOrder, "is_active": in.IsActive}
	return c.update(ctx, "categories", id, payload)
}

func (c *restClient) DeleteCategory(ctx context.Context, id int64) error {
	return c.delete(ctx, "categories", id)
}

// ---- settings / customization ---------------------------------------

func (c *restClient) GetSettings(ctx context.Context) (SettingsRow, error) {
	var rows []settingsRow
	q := url.Values{"select": {"*"}, "limit": {"1"}}
	if err := c.get(ctx, "store_settings", q, &rows); err != nil {
		return SettingsRow{}, err
	}
	if len(rows) == 0 {
		return SettingsRow{}, ErrNotFound
	}
	return rows[0].domain(), nil
}

func (c *restClient) InsertSettings(ctx context.Context, row SettingsRow) (SettingsRow, error) {
	var rows []settingsRow
	if err := c.insert(ctx, "store_settings", settingsPayload(row), &rows); err != nil {
		return SettingsRow{}, err
	}
	if len(rows) == 0 {
		return SettingsRow{}, ErrNotFound
	}
	return rows[0].domain(), nil
}

func (c *restClient) UpdateSettings(ctx context.Context, row SettingsRow) error {
	return c.update(ctx, "store_settings", row.ID, settingsPayload(row))
}

func (c *restClient) GetCustomization(ctx context.Context) (CustomizationRow, error) {
	var rows []customizationRow
	q := url.Values{"select": {"*"}, "limit": {"1"}}
	if err := c.get(ctx, "store_customization", q, &rows); err != nil {
		return CustomizationRow{}, err
	}
	if len(rows) == 0 {
		return CustomizationRow{}, ErrNotFound
	}
	return rows[0].domain(), nil
}

func (c *restClient) UpdateCustomization(ctx context.Context, row CustomizationRow) error {
	return c.update(ctx, "store_customization", row.ID, customizationPayload(row))
}

// ---- rpc -------------------------------------------------------------

func (c *restClient) ValidateAdminLogin(ctx context.Context, username, password string) ([]AdminUser, error) {
	body := map[string]any{"input_username": username, "input_password": password}
	var rows []adminUserRow
	if err := c.rpc(ctx, "validate_admin_login", body, &rows); err != nil {
		return nil, err
	}
	users := make([]AdminUser, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.domain())
	}
	return users, nil
}

func (c *restClient) FindAdminUser(ctx context.Context, username, passwordHash string) (AdminUser, error) {
	var rows []adminUserRow
	q := url.Values{
		"select":        {"id,username,email,full_name,is_active"},
		"username":      {"eq." + username},
		"password_hash": {"eq." + passwordHash},
		"is_active":     {"eq.true"},
		"limit":         {"1"},
	}
	if err := c.get(ctx, "admin_users", q, &rows); err != nil {
		return AdminUser{}, err
	}
	if len(rows) == 0 {
		return AdminUser{}, ErrNotFound
	}
	return rows[0].domain(), nil
}

func (c *restClient) DecrementCouponUsage(ctx context.Context, code string) (bool, error) {
	body := map[string]any{"p_coupon_code": code}
	var ok bool
	if err := c.rpc(ctx, "decrement_coupon_usage", body, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// ---- HTTP plumbing ----------------------------------------------------

func (c *restClient) get(ctx context.Context, table string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, "/rest/v1/"+table, query, nil, out)
}

func (c *restClient) insert(ctx context.Context, table string, payload any, out any) error {
	return c.do(ctx, http.MethodPost, "/rest/v1/"+table, nil, payload, out)
}

func (c *restClient) update(ctx context.Context, table string, id int64, payload any) error {
	q := url.Values{"id": {"eq." + strconv.FormatInt(id, 10)}}
	return c.do(ctx, http.MethodPatch, "/rest/v1/"+table, q, payload, nil)
}

func (c *restClient) delete(ctx context.Context, table string, id int64) error {
	q := url.Values{"id": {"eq." + strconv.FormatInt(id, 10)}}
	return c.do(ctx, http.MethodDelete, "/rest/v1/"+table, q, nil, nil)
}

func (c *restClient) rpc(ctx context.Context, fn string, payload any, out any) error {
	return c.do(ctx, http.MethodPost, "/rest/v1/rpc/"+fn, nil, payload, out)
}

func (c *restClient) do(ctx context.Context, method, path string, query url.Values, payload any, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost && out != nil {
		// rows API só devolve a linha inserida quando pedimos
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.connected.Store(false)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.connected.Store(false)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.connected.Store(true) // o backend respondeu; a chamada é que falhou
		if resp.StatusCode == http.StatusNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("gateway: %s %s: status %d: %s", method, path, resp.StatusCode, truncate(string(raw), 200))
	}

	c.connected.Store(true)
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("gateway: decode %s %s: %w", method, path, err)
	}
	return nil
}

// ---- helpers -----------------------------------------------------------

func centsFromDecimal(v float64) int {
	return int(math.Round(v * 100))
}

func decimalFromCents(cents int) float64 {
	return float64(cents) / 100
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullableStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
