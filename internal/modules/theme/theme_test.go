package theme

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Inovatum/site-vendas/internal/gateway"
)

func TestHexToHSL(t *testing.T) {
	require.Equal(t, "0 0% 100%", HexToHSL("#ffffff"))
	require.Equal(t, "0 0% 0%", HexToHSL("#000000"))
	require.Equal(t, "0 100% 50%", HexToHSL("#ff0000"))
	require.Equal(t, "120 100% 50%", HexToHSL("#00ff00"))
	require.Equal(t, "240 100% 50%", HexToHSL("#0000ff"))

	// entrada que não parece hex vira preto
	require.Equal(t, "0 0% 0%", HexToHSL("vermelho"))
	require.Equal(t, "0 0% 0%", HexToHSL("#fff"))
}

func TestDarken(t *testing.T) {
	require.Equal(t, "#e5e5e5", Darken("#ffffff", 10))
	require.Equal(t, "#000000", Darken("#0a0a0a", 10))
	require.Equal(t, "vermelho", Darken("vermelho", 10))
}

func TestFromRowDefaults(t *testing.T) {
	c := FromRow(gateway.CustomizationRow{ThemeStyle: "neon", LogoSize: "gigante"})
	require.Equal(t, StyleModern, c.Style)
	require.Equal(t, LogoMedium, c.LogoSize)

	c = FromRow(gateway.CustomizationRow{ThemeStyle: "minimal", LogoSize: "large"})
	require.Equal(t, StyleMinimal, c.Style)
	require.Equal(t, LogoLarge, c.LogoSize)
}

func TestRenderStylesheet(t *testing.T) {
	c := FromRow(gateway.DefaultCustomization())
	css := Render(c)

	require.Contains(t, css, ":root {")
	require.Contains(t, css, "--primary: "+HexToHSL("#e11d48")+";")
	require.Contains(t, css, "--button-bg: #e11d48;")
	require.Contains(t, css, ".btn-store:hover {")
	require.Contains(t, css, Darken("#e11d48", 10))

	// modern: raio de 12px
	require.Contains(t, css, "border-radius: 12px !important;")
	// logo medium existe sempre como classe
	require.Contains(t, css, ".logo-medium {")
	require.Contains(t, css, "height: 40px;")
	// logo e nome visíveis por padrão
	require.NotContains(t, css, "display: none")
}

func TestRenderStyleVariantsAndVisibility(t *testing.T) {
	c := FromRow(gateway.DefaultCustomization())

	c.Style = StyleMinimal
	css := Render(c)
	require.Contains(t, css, "border-radius: 2px !important;")
	require.Contains(t, css, "box-shadow: none !important;")

	c.Style = StyleClassic
	css = Render(c)
	require.Contains(t, css, "border-radius: 8px !important;")

	c.ShowLogo = false
	c.ShowStoreName = false
	css = Render(c)
	require.Contains(t, css, ".store-logo {")
	require.Contains(t, css, ".store-name {")
}

func TestRenderAppendsCustomCSS(t *testing.T) {
	c := FromRow(gateway.DefaultCustomization())
	c.CustomCSS = ".banner { color: hotpink; }"

	css := Render(c)
	require.Contains(t, css, "/* custom css (admin) */")
	require.Contains(t, css, ".banner { color: hotpink; }")

	c.CustomCSS = "   "
	require.NotContains(t, Render(c), "custom css")
}
