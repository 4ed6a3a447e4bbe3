// Package view tem os modelos JSON devolvidos pela API e a formatação
// de dinheiro para texto.
package view

import "fmt"

// FormatBRL formata centavos como "R$ 130.00". O ponto decimal segue o
// formato usado nas mensagens de pedido.
func FormatBRL(cents int) string {
	neg := ""
	if cents < 0 {
		neg = "-"
		cents = -cents
	}
	return fmt.Sprintf("%sR$ %d.%02d", neg, cents/100, cents%100)
}
