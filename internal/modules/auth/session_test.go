package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newSessions(ttl time.Duration) *Sessions {
	return NewSessions("um-segredo-comprido-o-suficiente", ttl, NewMemorySessionStore())
}

func TestIssueAndVerify(t *testing.T) {
	s := newSessions(time.Hour)
	ident := Identity{ID: 7, Username: "admin", FullName: "Dona da Loja", Source: "rpc"}

	token, expiresAt, err := s.Issue(ident)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	got, err := s.Verify(token)
	require.NoError(t, err)
	require.Equal(t, ident, got)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	s := newSessions(time.Hour)
	token, _, err := s.Issue(Identity{Username: "admin"})
	require.NoError(t, err)

	other := NewSessions("outro-segredo", time.Hour, NewMemorySessionStore())
	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	s := newSessions(time.Hour)
	_, err := s.Verify("nao-e-um-jwt")
	require.Error(t, err)
}

func TestRevokeKillsSessionImmediately(t *testing.T) {
	s := newSessions(time.Hour)
	token, _, err := s.Issue(Identity{Username: "admin"})
	require.NoError(t, err)

	s.Revoke(token)
	_, err = s.Verify(token)
	require.Error(t, err)

	// revogar de novo (ou lixo) não explode
	s.Revoke(token)
	s.Revoke("nao-e-um-jwt")
}

func TestVerifyExpiredToken(t *testing.T) {
	s := newSessions(time.Minute)
	token, _, err := s.Issue(Identity{Username: "admin"})
	require.NoError(t, err)

	// avança o relógio além do TTL
	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = s.Verify(token)
	require.Error(t, err)
}
