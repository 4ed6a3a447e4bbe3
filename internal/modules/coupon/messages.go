package coupon

import (
	"errors"
	"fmt"

	"github.com/Inovatum/site-vendas/internal/shared/apperr"
)

// AsAppError traduz os erros do engine para a mensagem mostrada ao
// cliente, com o código dentro da frase como no aviso original.
func AsAppError(err error, code string) error {
	switch {
	case errors.Is(err, ErrExpired):
		return apperr.InvalidErr(fmt.Sprintf("O cupom %q expirou.", code), nil)
	case errors.Is(err, ErrExhausted):
		return apperr.ConflictErr(fmt.Sprintf("O cupom %q já atingiu seu limite de usos.", code))
	case errors.Is(err, ErrInvalid):
		return apperr.InvalidErr(fmt.Sprintf("O cupom %q não é mais válido.", code), nil)
	default:
		return apperr.Wrap(err)
	}
}
