// Package auth autentica o painel admin contra uma cadeia ordenada de
// autoridades: a função validate_admin_login do backend, a consulta
// direta à tabela admin_users e por fim a credencial fixa de resgate.
package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/Inovatum/site-vendas/internal/gateway"
)

type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	// Source diz qual autoridade aceitou o login (rpc, table, fallback).
	Source string `json:"source"`
}

type Status int

const (
	// StatusSuccess: a autoridade aceitou a credencial.
	StatusSuccess Status = iota
	// StatusNotFound: a autoridade respondeu e não conhece/aceita a
	// credencial; a próxima da cadeia ainda pode aceitar.
	StatusNotFound
	// StatusRejected: a autoridade respondeu com recusa definitiva; a
	// cadeia para aqui.
	StatusRejected
	// StatusTransportError: a autoridade não pôde ser consultada.
	StatusTransportError
)

type Result struct {
	Status   Status
	Identity Identity
	Err      error
}

type Strategy interface {
	Name() string
	Authenticate(ctx context.Context, username, password string) Result
}

// rpcStrategy chama a função validate_admin_login. Lista vazia é a
// resposta da função para credencial errada.
type rpcStrategy struct{ gw gateway.Client }

func (rpcStrategy) Name() string { return "rpc" }

func (s rpcStrategy) Authenticate(ctx context.Context, username, password string) Result {
	users, err := s.gw.ValidateAdminLogin(ctx, username, password)
	if err != nil {
		return Result{Status: StatusTransportError, Err: err}
	}
	if len(users) == 0 {
		return Result{Status: StatusNotFound}
	}
	u := users[0]
	if !u.IsActive {
		return Result{Status: StatusNotFound}
	}
	return Result{Status: StatusSuccess, Identity: Identity{ID: u.ID, Username: u.Username, FullName: u.FullName, Source: "rpc"}}
}

// tableStrategy consulta admin_users diretamente; cobre backends sem a
// função instalada.
type tableStrategy struct{ gw gateway.Client }

func (tableStrategy) Name() string { return "table" }

func (s tableStrategy) Authenticate(ctx context.Context, username, password string) Result {
	u, err := s.gw.FindAdminUser(ctx, username, password)
	if errors.Is(err, gateway.ErrNotFound) {
		return Result{Status: StatusNotFound}
	}
	if err != nil {
		return Result{Status: StatusTransportError, Err: err}
	}
	if !u.IsActive {
		return Result{Status: StatusNotFound}
	}
	return Result{Status: StatusSuccess, Identity: Identity{ID: u.ID, Username: u.Username, FullName: u.FullName, Source: "table"}}
}

// fallbackStrategy é a credencial fixa de resgate, só comparada quando
// nenhuma autoridade remota reconheceu o usuário.
type fallbackStrategy struct {
	username string
	hash     string
}

func (fallbackStrategy) Name() string { return "fallback" }

func (s fallbackStrategy) Authenticate(_ context.Context, username, password string) Result {
	if s.username == "" || s.hash == "" || username != s.username {
		return Result{Status: StatusNotFound}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.hash), []byte(password)); err != nil {
		return Result{Status: StatusNotFound}
	}
	return Result{Status: StatusSuccess, Identity: Identity{Username: s.username, Source: "fallback"}}
}
