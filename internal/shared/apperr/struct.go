package apperr

type Kind string

type AppError struct {
	Kind      Kind
	PublicMsg string            // mensagem segura para exibir ao usuário
	Fields    map[string]string // erros de campo (formulários), opcional
	Err       error             // erro interno (apenas para log)
}
