// Package theme transforma a linha store_customization na folha de
// estilo da vitrine, servida em GET /theme.css.
package theme

import "github.com/Inovatum/site-vendas/internal/gateway"

type ThemeStyle string

const (
	StyleModern  ThemeStyle = "modern"
	StyleClassic ThemeStyle = "classic"
	StyleMinimal ThemeStyle = "minimal"
)

type LogoSize string

const (
	LogoSmall  LogoSize = "small"
	LogoMedium LogoSize = "medium"
	LogoLarge  LogoSize = "large"
)

// Colors são os catorze slots de cor editáveis no admin.
type Colors struct {
	Primary        string `json:"primary_color"`
	Secondary      string `json:"secondary_color"`
	Accent         string `json:"accent_color"`
	Background     string `json:"background_color"`
	Text           string `json:"text_color"`
	Button         string `json:"button_color"`
	ButtonText     string `json:"button_text_color"`
	SiteBackground string `json:"site_background_color"`
	CardBackground string `json:"card_background_color"`
	CardBorder     string `json:"card_border_color"`
	Header         string `json:"header_color"`
	Footer         string `json:"footer_color"`
	Cart           string `json:"cart_color"`
	Menu           string `json:"menu_color"`
}

type Customization struct {
	ID            int64      `json:"id"`
	Colors        Colors     `json:"colors"`
	LogoURL       string     `json:"logo_url,omitempty"`
	LogoSize      LogoSize   `json:"logo_size"`
	ShowLogo      bool       `json:"show_logo"`
	ShowStoreName bool       `json:"show_store_name"`
	Style         ThemeStyle `json:"theme_style"`
	CustomCSS     string     `json:"custom_css,omitempty"`
}

func FromRow(row gateway.CustomizationRow) Customization {
	style := ThemeStyle(row.ThemeStyle)
	switch style {
	case StyleModern, StyleClassic, StyleMinimal:
	default:
		style = StyleModern
	}
	size := LogoSize(row.LogoSize)
	switch size {
	case LogoSmall, LogoMedium, LogoLarge:
	default:
		size = LogoMedium
	}
	return Customization{
		ID: row.ID,
		Colors: Colors{
			Primary:        row.PrimaryColor,
			Secondary:      row.SecondaryColor,
			Accent:         row.AccentColor,
			Background:     row.BackgroundColor,
			Text:           row.TextColor,
			Button:         row.ButtonColor,
			ButtonText:     row.ButtonTextColor,
			SiteBackground: row.SiteBackgroundColor,
			CardBackground: row.CardBackgroundColor,
			CardBorder:     row.CardBorderColor,
			Header:         row.HeaderColor,
			Footer:         row.FooterColor,
			Cart:           row.CartColor,
			Menu:           row.MenuColor,
		},
		LogoURL:       row.LogoURL,
		LogoSize:      size,
		ShowLogo:      row.ShowLogo,
		ShowStoreName: row.ShowStoreName,
		Style:         style,
		CustomCSS:     row.CustomCSS,
	}
}

func (c Customization) Row() gateway.CustomizationRow {
	return gateway.CustomizationRow{
		ID:                  c.ID,
		PrimaryColor:        c.Colors.Primary,
		SecondaryColor:      c.Colors.Secondary,
		AccentColor:         c.Colors.Accent,
		BackgroundColor:     c.Colors.Background,
		TextColor:           c.Colors.Text,
		ButtonColor:         c.Colors.Button,
		ButtonTextColor:     c.Colors.ButtonText,
		SiteBackgroundColor: c.Colors.SiteBackground,
		CardBackgroundColor: c.Colors.CardBackground,
		CardBorderColor:     c.Colors.CardBorder,
		HeaderColor:         c.Colors.Header,
		FooterColor:         c.Colors.Footer,
		CartColor:           c.Colors.Cart,
		MenuColor:           c.Colors.Menu,
		LogoURL:             c.LogoURL,
		LogoSize:            string(c.LogoSize),
		ShowLogo:            c.ShowLogo,
		ShowStoreName:       c.ShowStoreName,
		ThemeStyle:          string(c.Style),
		CustomCSS:           c.CustomCSS,
	}
}
