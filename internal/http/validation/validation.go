package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldErrors map[string]string

// FromBindError converte o erro de bind/validação do gin para um mapa
// campo->mensagem. dst é o ponteiro do struct bindado (para ler as
// tags json).
func FromBindError(err error, dst any) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			key := fieldKey(dst, fe.StructField())
			out[key] = messageForTag(fe.Tag(), fe.Param())
		}
		return out
	}

	// demais erros de bind (tipo errado etc.)
	out["_"] = "Dados inválidos."
	return out
}

func fieldKey(dst any, structField string) string {
	t := reflect.TypeOf(dst)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return strings.ToLower(structField)
	}

	f, ok := t.FieldByName(structField)
	if !ok {
		return strings.ToLower(structField)
	}
	tag := f.Tag.Get("json")
	if tag == "" {
		return strings.ToLower(structField)
	}
	if i := strings.Index(tag, ","); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" || tag == "-" {
		return strings.ToLower(structField)
	}
	return tag
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "Este campo é obrigatório."
	case "min":
		return "Deve ter pelo menos " + param + " caracteres."
	case "max":
		return "Deve ter no máximo " + param + " caracteres."
	case "gte":
		return "Deve ser maior ou igual a " + param + "."
	case "oneof":
		return "Valor fora das opções permitidas."
	case "hexcolor":
		return "Informe uma cor no formato #rrggbb."
	default:
		return "Valor inválido."
	}
}
