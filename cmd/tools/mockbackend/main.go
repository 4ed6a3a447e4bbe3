// mockbackend sobe um stub local do backend hospedado: a rows API das
// quatro tabelas, as duas funções chamáveis e a function de PIX. Serve
// para rodar a loja sem projeto hospedado:
//
//	go run ./cmd/tools/mockbackend -addr :9090 -seed
//	BACKEND_URL=http://localhost:9090 go run ./cmd/web
package main

import (
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Inovatum/site-vendas/internal/gateway"
)

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	seed := flag.Bool("seed", false, "seed sample products and default settings")
	flag.Parse()

	var mem *gateway.Memory
	if *seed {
		mem = gateway.NewMemorySeeded()
	} else {
		mem = gateway.NewMemory()
	}

	s := &server{mem: mem}
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/v1/products", s.products)
	mux.HandleFunc("/rest/v1/categories", s.categories)
	mux.HandleFunc("/rest/v1/store_settings", s.settings)
	mux.HandleFunc("/rest/v1/store_customization", s.customization)
	mux.HandleFunc("/rest/v1/admin_users", s.adminUsers)
	mux.HandleFunc("/rest/v1/rpc/validate_admin_login", s.validateLogin)
	mux.HandleFunc("/rest/v1/rpc/decrement_coupon_usage", s.decrementCoupon)
	mux.HandleFunc("/functions/v1/generate-pix", s.generatePix)

	log.Printf("mockbackend listening on %s (seed=%v)", *addr, *seed)
	log.Fatal(http.ListenAndServe(*addr, logRequests(mux)))
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL.String())
		next.ServeHTTP(w, r)
	})
}

type server struct {
	mem *gateway.Memory
}

// ---- products ---------------------------------------------------------

func (s *server) products(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, _ := s.mem.ListProducts(r.Context())
		rows := make([]map[string]any, 0, len(items))
		for _, p := range items {
			rows = append(rows, productWire(p))
		}
		writeJSON(w, http.StatusOK, rows)

	case http.MethodPost:
		var payload map[string]any
		if !decode(w, r, &payload) {
			return
		}
		p, err := s.mem.InsertProduct(r.Context(), productInput(payload))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, []map[string]any{productWire(p)})

	case http.MethodPatch:
		id, ok := eqID(w, r)
		if !ok {
			return
		}
		var payload map[string]any
		if !decode(w, r, &payload) {
			return
		}
		var err error
		if status, only := onlyStatus(payload); only {
			err = s.mem.UpdateProductStatus(r.Context(), id, status)
		} else {
			err = s.mem.UpdateProduct(r.Context(), id, productInput(payload))
		}
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case http.MethodDelete:
		id, ok := eqID(w, r)
		if !ok {
			return
		}
		if err := s.mem.DeleteProduct(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func productWire(p gateway.Product) map[string]any {
	return map[string]any{
		"id":         p.ID,
		"name":       p.Name,
		"price":      float64(p.PriceCents) / 100,
		"image":      p.Image,
		"image_2":    nullable(p.Image2),
		"category":   p.Category,
		"sizes":      p.Sizes,
		"stock":      p.Stock,
		"status":     p.Status,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
}

func productInput(payload map[string]any) gateway.ProductInput {
	return gateway.ProductInput{
		Name:       str(payload["name"]),
		PriceCents: int(math.Round(num(payload["price"]) * 100)),
		Image:      str(payload["image"]),
		Image2:     str(payload["image_2"]),
		Category:   str(payload["category"]),
		Sizes:      strs(payload["sizes"]),
		Stock:      int(num(payload["stock"])),
		Status:     str(payload["status"]),
	}
}

func onlyStatus(payload map[string]any) (string, bool) {
	if len(payload) == 1 {
		if v, ok := payload["status"]; ok {
			return str(v), true
		}
	}
	return "", false
}

// ---- categories -------------------------------------------------------

func (s *server) categories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, _ := s.mem.ListCategories(r.Context())
		rows := make([]map[string]any, 0, len(items))
		for _, c := range items {
			rows = append(rows, categoryWire(c))
		}
		writeJSON(w, http.StatusOK, rows)

	case http.MethodPost:
		var payload map[string]any
		if !decode(w, r, &payload) {
			return
		}
		c, err := s.mem.InsertCategory(r.Context(), categoryInput(payload))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, []map[string]any{categoryWire(c)})

	case http.MethodPatch:
		id, ok := eqID(w, r)
		if !ok {
			return
		}
		var payload map[string]any
		if !decode(w, r, &payload) {
			return
		}
		if err := s.mem.UpdateCategory(r.Context(), id, categoryInput(payload)); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case http.MethodDelete:
		id, ok := eqID(w, r)
		if !ok {
			return
		}
		if err := s.mem.DeleteCategory(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func categoryWire(c gateway.Category) map[string]any {
	return map[string]any{
		"id":            c.ID,
		"name":          c.Name,
		"display_order": c.DisplayOrder,
		"is_active":     c.IsActive,
		"created_at":    c.CreatedAt,
		"updated_at":    c.UpdatedAt,
	}
}

func categoryInput(payload map[string]any) gateway.CategoryInput {
	active := true
	if v, ok := payload["is_active"].(bool); ok {
		active = v
	}
	return gateway.CategoryInput{
		Name:         str(payload["name"]),
		DisplayOrder: int(num(payload["display_order"])),
		IsActive:     active,
	}
}

// ---- settings ---------------------------------------------------------

func (s *server) settings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		row, err := s.mem.GetSettings(r.Context())
		if err != nil {
			writeJSON(w, http.StatusOK, []any{})
			return
		}
		writeJSON(w, http.StatusOK, []map[string]any{settingsWire(row)})

	case http.MethodPost:
		var payload map[string]any
		if !decode(w, r, &payload) {
			return
		}
		row, err := s.mem.InsertSettings(r.Context(), settingsFromWire(payload))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, []map[string]any{settingsWire(row)})

	case http.MethodPatch:
		id, ok := eqID(w, r)
		if !ok {
			return
		}
		var payload map[string]any
		if !decode(w, r, &payload) {
			return
		}
		row := settingsFromWire(payload)
		row.ID = id
		if err := s.mem.UpdateSettings(r.Context(), row); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func settingsWire(row gateway.SettingsRow) map[string]any {
	out := map[string]any{
		"id":                  row.ID,
		"store_name":          row.StoreName,
		"whatsapp_number":     row.WhatsAppNumber,
		"monthly_sales":       row.MonthlySales,
		"footer_text":         nullable(row.FooterText),
		"footer_company_name": nullable(row.FooterCompanyName),
		"browser_tab_title":   nullable(row.BrowserTabTitle),
		"favicon_url":         nullable(row.FaviconURL),
		"pix_copy_paste":      nullable(row.PixCopyPaste),
	}
	couponWire(out, 1, row.CouponCode1, row.CouponType1, row.CouponValue1, row.CouponExpiration1, row.CouponUsageLimit1)
	couponWire(out, 2, row.CouponCode2, row.CouponType2, row.CouponValue2, row.CouponExpiration2, row.CouponUsageLimit2)
	couponWire(out, 3, row.CouponCode3, row.CouponType3, row.CouponValue3, row.CouponExpiration3, row.CouponUsageLimit3)
	return out
}

func couponWire(out map[string]any, slot int, code, typ string, value *float64, exp *time.Time, limit *int) {
	n := strconv.Itoa(slot)
	out["coupon_code_"+n] = nullable(code)
	out["coupon_type_"+n] = nullable(typ)
	out["coupon_value_"+n] = value
	out["coupon_expiration_"+n] = exp
	out["coupon_usage_limit_"+n] = limit
}

func settingsFromWire(payload map[string]any) gateway.SettingsRow {
	row := gateway.SettingsRow{
		StoreName:         str(payload["store_name"]),
		WhatsAppNumber:    str(payload["whatsapp_number"]),
		MonthlySales:      int(num(payload["monthly_sales"])),
		FooterText:        str(payload["footer_text"]),
		FooterCompanyName: str(payload["footer_company_name"]),
		BrowserTabTitle:   str(payload["browser_tab_title"]),
		FaviconURL:        str(payload["favicon_url"]),
		PixCopyPaste:      str(payload["pix_copy_paste"]),
	}
	row.CouponCode1, row.CouponType1, row.CouponValue1, row.CouponExpiration1, row.CouponUsageLimit1 = couponFromWire(payload, 1)
	row.CouponCode2, row.CouponType2, row.CouponValue2, row.CouponExpiration2, row.CouponUsageLimit2 = couponFromWire(payload, 2)
	row.CouponCode3, row.CouponType3, row.CouponValue3, row.CouponExpiration3, row.CouponUsageLimit3 = couponFromWire(payload, 3)
	return row
}

func couponFromWire(payload map[string]any, slot int) (string, string, *float64, *time.Time, *int) {
	n := strconv.Itoa(slot)
	var value *float64
	if v, ok := payload["coupon_value_"+n].(float64); ok {
		value = &v
	}
	var limit *int
	if v, ok := payload["coupon_usage_limit_"+n].(float64); ok {
		l := int(v)
		limit = &l
	}
	var exp *time.Time
	if v, ok := payload["coupon_expiration_"+n].(string); ok && v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			exp = &t
		}
	}
	return str(payload["coupon_code_"+n]), str(payload["coupon_type_"+n]), value, exp, limit
}

// ---- customization ----------------------------------------------------

func (s *server) customization(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		row, err := s.mem.GetCustomization(r.Context())
		if err != nil {
			writeJSON(w, http.StatusOK, []any{})
			return
		}
		writeJSON(w, http.StatusOK, []map[string]any{customizationWire(row)})

	case http.MethodPatch:
		id, ok := eqID(w, r)
		if !ok {
			return
		}
		var payload map[string]any
		if !decode(w, r, &payload) {
			return
		}
		row := customizationFromWire(payload)
		row.ID = id
		if err := s.mem.UpdateCustomization(r.Context(), row); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func customizationWire(row gateway.CustomizationRow) map[string]any {
	return map[string]any{
		"id":                    row.ID,
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
		"logo_url":              nullable(row.LogoURL),
		"logo_size":             row.LogoSize,
		"show_logo":             row.ShowLogo,
		"show_store_name":       row.ShowStoreName,
		"theme_style":           row.ThemeStyle,
		"custom_css":            nullable(row.CustomCSS),
	}
}

func customizationFromWire(payload map[string]any) gateway.CustomizationRow {
	showLogo, _ := payload["show_logo"].(bool)
	showName, _ := payload["show_store_name"].(bool)
	return gateway.CustomizationRow{
		PrimaryColor:        str(payload["primary_color"]),
		SecondaryColor:      str(payload["secondary_color"]),
		AccentColor:         str(payload["accent_color"]),
		BackgroundColor:     str(payload["background_color"]),
		TextColor:           str(payload["text_color"]),
		ButtonColor:         str(payload["button_color"]),
		ButtonTextColor:     str(payload["button_text_color"]),
		SiteBackgroundColor: str(payload["site_background_color"]),
		CardBackgroundColor: str(payload["card_background_color"]),
		CardBorderColor:     str(payload["card_border_color"]),
		HeaderColor:         str(payload["header_color"]),
		FooterColor:         str(payload["footer_color"]),
		CartColor:           str(payload["cart_color"]),
		MenuColor:           str(payload["menu_color"]),
		LogoURL:             str(payload["logo_url"]),
		LogoSize:            str(payload["logo_size"]),
		ShowLogo:            showLogo,
		ShowStoreName:       showName,
		ThemeStyle:          str(payload["theme_style"]),
		CustomCSS:           str(payload["custom_css"]),
	}
}

// ---- admin ------------------------------------------------------------

func (s *server) adminUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	username := strings.TrimPrefix(r.URL.Query().Get("username"), "eq.")
	passwordHash := strings.TrimPrefix(r.URL.Query().Get("password_hash"), "eq.")

	u, err := s.mem.FindAdminUser(r.Context(), username, passwordHash)
	if err != nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, []map[string]any{adminWire(u)})
}

func (s *server) validateLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"input_username"`
		Password string `json:"input_password"`
	}
	if !decode(w, r, &body) {
		return
	}
	users, err := s.mem.ValidateAdminLogin(r.Context(), body.Username, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	rows := make([]map[string]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, adminWire(u))
	}
	writeJSON(w, http.StatusOK, rows)
}

func adminWire(u gateway.AdminUser) map[string]any {
	return map[string]any{
		"id":        u.ID,
		"username":  u.Username,
		"email":     u.Email,
		"full_name": u.FullName,
		"is_active": u.IsActive,
	}
}

func (s *server) decrementCoupon(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"p_coupon_code"`
	}
	if !decode(w, r, &body) {
		return
	}
	ok, err := s.mem.DecrementCouponUsage(r.Context(), body.Code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

// ---- pix ---------------------------------------------------------------

func (s *server) generatePix(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Amount float64 `json:"amount"`
	}
	if !decode(w, r, &body) {
		return
	}
	code := fmt.Sprintf("00020126580014BR.GOV.BCB.PIX0136%s520400005303986540%.2f5802BR6304MOCK", uuid.NewString(), body.Amount)
	writeJSON(w, http.StatusOK, map[string]any{
		"pix_code":       code,
		"qr_code_base64": base64.StdEncoding.EncodeToString([]byte(code)),
	})
}

// ---- helpers ------------------------------------------------------------

func eqID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := strings.TrimPrefix(r.URL.Query().Get("id"), "eq.")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		http.Error(w, `{"error":"bad id filter"}`, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, `{"error":"bad json"}`, http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if err == gateway.ErrNotFound {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) float64 {
	f, _ := v.(float64)
	return f
}

func strs(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
