package theme

// Render gera a folha de estilo completa da vitrine para uma
// customização. O layout base é fixo; a customização troca cores,
// raio de borda por estilo de tema e tamanho do logo.
func Render(c Customization) string {
	var s Stylesheet

	s.Add(":root",
		Decl{"--primary", HexToHSL(c.Colors.Primary)},
		Decl{"--primary-foreground", HexToHSL(c.Colors.ButtonText)},
		Decl{"--secondary", HexToHSL(c.Colors.Secondary)},
		Decl{"--secondary-foreground", HexToHSL(c.Colors.Text)},
		Decl{"--accent", HexToHSL(c.Colors.Accent)},
		Decl{"--accent-foreground", HexToHSL(c.Colors.ButtonText)},
		Decl{"--background", HexToHSL(c.Colors.Background)},
		Decl{"--foreground", HexToHSL(c.Colors.Text)},
		Decl{"--button-bg", c.Colors.Button},
		Decl{"--button-text", c.Colors.ButtonText},
		Decl{"--site-bg", c.Colors.SiteBackground},
		Decl{"--card-bg", c.Colors.CardBackground},
		Decl{"--card-border", c.Colors.CardBorder},
		Decl{"--header-bg", c.Colors.Header},
		Decl{"--footer-bg", c.Colors.Footer},
		Decl{"--cart-bg", c.Colors.Cart},
		Decl{"--menu-bg", c.Colors.Menu},
	)

	s.Add(".text-primary", Decl{"color", c.Colors.Primary + " !important"})
	s.Add(".border-primary", Decl{"border-color", c.Colors.Primary + " !important"})

	s.Add(".btn-store",
		Decl{"background-color", "var(--button-bg)"},
		Decl{"color", "var(--button-text)"},
	)
	s.Add(".btn-store:hover",
		Decl{"background-color", Darken(c.Colors.Button, 10) + " !important"},
	)

	switch c.Style {
	case StyleMinimal:
		s.Add(".card, .border",
			Decl{"border-radius", "2px !important"},
			Decl{"border-width", "1px !important"},
		)
		s.Add(".shadow-sm, .shadow-md",
			Decl{"box-shadow", "none !important"},
			Decl{"border", "1px solid #e5e7eb !important"},
		)
	case StyleClassic:
		s.Add(".card, .border", Decl{"border-radius", "8px !important"})
		s.Add(".shadow-sm", Decl{"box-shadow", "0 2px 4px rgba(0,0,0,0.1) !important"})
		s.Add(".shadow-md", Decl{"box-shadow", "0 4px 6px rgba(0,0,0,0.1) !important"})
	default:
		s.Add(".card, .border", Decl{"border-radius", "12px !important"})
		s.Add(".shadow-sm", Decl{"box-shadow", "0 1px 3px rgba(0,0,0,0.1) !important"})
		s.Add(".shadow-md", Decl{"box-shadow", "0 4px 6px rgba(0,0,0,0.07) !important"})
	}

	s.Add("body", Decl{"background-color", "var(--site-bg) !important"})
	s.Add(".card",
		Decl{"background-color", "var(--card-bg) !important"},
		Decl{"border-color", "var(--card-border) !important"},
	)
	s.Add("header", Decl{"background-color", "var(--header-bg) !important"})
	s.Add("footer", Decl{"background-color", "var(--footer-bg) !important"})
	s.Add(".cart-panel", Decl{"background-color", "var(--cart-bg) !important"})
	s.Add(".menu-filter, .category-filter", Decl{"background-color", "var(--menu-bg) !important"})

	for _, ls := range []struct {
		size LogoSize
		px   string
	}{
		{LogoSmall, "32px"},
		{LogoMedium, "40px"},
		{LogoLarge, "48px"},
	} {
		s.Add(".logo-"+string(ls.size),
			Decl{"width", ls.px},
			Decl{"height", ls.px},
			Decl{"border-radius", "50%"},
		)
	}

	if !c.ShowLogo {
		s.Add(".store-logo", Decl{"display", "none"})
	}
	if !c.ShowStoreName {
		s.Add(".store-name", Decl{"display", "none"})
	}

	if c.CustomCSS != "" {
		s.AddRaw("/* custom css (admin) */\n" + c.CustomCSS)
	}

	return s.Render()
}
