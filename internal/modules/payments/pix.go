// Package payments gera cobranças PIX pela function hospedada
// generate-pix. O código devolvido é copia-e-cola; o QR vem como PNG em
// base64 pronto para um data URI.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PixDisplayTTL é quanto tempo o código fica exposto na tela antes do
// contador zerar. O prazo é só de exibição; o backend não expira a
// cobrança em sincronia.
const PixDisplayTTL = 30 * time.Minute

type PixCharge struct {
	Code             string `json:"code"`
	QRCodeBase64     string `json:"qr_code_base64,omitempty"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

type Provider interface {
	GeneratePix(ctx context.Context, amountCents int) (PixCharge, error)
}

type HTTPProvider struct {
	baseURL string
	anonKey string
	client  *http.Client
}

func NewHTTPProvider(baseURL, anonKey string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPProvider{
		baseURL: baseURL,
		anonKey: anonKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) GeneratePix(ctx context.Context, amountCents int) (PixCharge, error) {
	payload, err := json.Marshal(map[string]any{
		"amount": float64(amountCents) / 100,
	})
	if err != nil {
		return PixCharge{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/functions/v1/generate-pix", bytes.NewReader(payload))
	if err != nil {
		return PixCharge{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.anonKey != "" {
		req.Header.Set("apikey", p.anonKey)
		req.Header.Set("Authorization", "Bearer "+p.anonKey)
	}

	res, err := p.client.Do(req)
	if err != nil {
		return PixCharge{}, fmt.Errorf("generate-pix: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return PixCharge{}, err
	}
	if res.StatusCode != http.StatusOK {
		return PixCharge{}, fmt.Errorf("generate-pix: status %d", res.StatusCode)
	}

	var out struct {
		PixCode      string `json:"pix_code"`
		QRCodeBase64 string `json:"qr_code_base64"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return PixCharge{}, fmt.Errorf("generate-pix: decode: %w", err)
	}
	if out.PixCode == "" {
		return PixCharge{}, fmt.Errorf("generate-pix: empty pix_code")
	}

	return PixCharge{
		Code:             out.PixCode,
		QRCodeBase64:     out.QRCodeBase64,
		ExpiresInSeconds: int(PixDisplayTTL.Seconds()),
	}, nil
}

// StaticProvider devolve sempre o código copia-e-cola fixo do lojista
// (campo pix_copy_paste das configurações). Sem QR.
type StaticProvider struct {
	Code string
}

func (p StaticProvider) GeneratePix(_ context.Context, _ int) (PixCharge, error) {
	if p.Code == "" {
		return PixCharge{}, fmt.Errorf("generate-pix: no static code configured")
	}
	return PixCharge{Code: p.Code, ExpiresInSeconds: int(PixDisplayTTL.Seconds())}, nil
}
