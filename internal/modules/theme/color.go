package theme

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// HexToHSL converte "#rrggbb" para o triplo "H S% L%" que as variáveis
// de tema consomem. Entrada que não parece hex vira preto.
func HexToHSL(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return "0 0% 0%"
	}

	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	l := (max + min) / 2

	var h, s float64
	if max != min {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}
		switch max {
		case rf:
			h = (gf - bf) / d
			if gf < bf {
				h += 6
			}
		case gf:
			h = (bf-rf)/d + 2
		default:
			h = (rf-gf)/d + 4
		}
		h /= 6
	}

	return fmt.Sprintf("%d %d%% %d%%",
		int(math.Round(h*360)),
		int(math.Round(s*100)),
		int(math.Round(l*100)))
}

// Darken escurece a cor em percent pontos (0..100), canal a canal.
// Usada para o estado hover dos botões.
func Darken(hex string, percent int) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return hex
	}
	amt := int(math.Round(2.55 * float64(percent)))
	return fmt.Sprintf("#%02x%02x%02x", clampByte(r-amt), clampByte(g-amt), clampByte(b-amt))
}

func parseHex(hex string) (r, g, b int, ok bool) {
	if !strings.HasPrefix(hex, "#") || len(hex) != 7 {
		return 0, 0, 0, false
	}
	rv, err1 := strconv.ParseInt(hex[1:3], 16, 32)
	gv, err2 := strconv.ParseInt(hex[3:5], 16, 32)
	bv, err3 := strconv.ParseInt(hex[5:7], 16, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return int(rv), int(gv), int(bv), true
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
