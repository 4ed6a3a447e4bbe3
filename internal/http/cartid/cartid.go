// Package cartid liga a sessão de compra ao cookie assinado que
// identifica o carrinho em memória no servidor.
package cartid

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrInvalid = errors.New("invalid cart cookie")

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func New(secret []byte, name string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: name, Secure: secure}
}

// value format: cartID.base64(hmac(cartID))
func (c *Codec) Encode(cartID string) string {
	return cartID + "." + sign(c.Secret, cartID)
}

func (c *Codec) Decode(v string) (string, error) {
	parts := strings.Split(v, ".")
	if len(parts) != 2 || parts[0] == "" {
		return "", ErrInvalid
	}
	if !verify(c.Secret, parts[0], parts[1]) {
		return "", ErrInvalid
	}
	return parts[0], nil
}

// Ensure devolve o id do carrinho da sessão, cunhando um novo (e
// gravando o cookie) na primeira visita ou quando a assinatura não
// bate.
func (c *Codec) Ensure(ctx *gin.Context) string {
	if v, err := ctx.Cookie(c.CookieName); err == nil && v != "" {
		if id, err := c.Decode(v); err == nil {
			return id
		}
	}
	id := uuid.NewString()
	c.Set(ctx, id)
	return id
}

func (c *Codec) Set(ctx *gin.Context, cartID string) {
	maxAge := int((30 * 24 * time.Hour).Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, c.Encode(cartID), maxAge, "/", "", c.Secure, true)
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
