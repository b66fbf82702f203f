package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"emeraldscents-be/internal/logger"

	"go.uber.org/zap"
)

const paystackBaseURL = "https://api.paystack.co"

var ErrInvalidSignature = errors.New("invalid webhook signature")

type paystackGateway struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewPaystackGateway(secretKey string) Gateway {
	if secretKey == "" {
		logger.L().Warn("Paystack secret key is empty")
	}

	return &paystackGateway{
		secretKey: secretKey,
		baseURL:   paystackBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (g *paystackGateway) InitializeTransaction(
	ctx context.Context,
	reference, email string,
	amount int64,
) (*Authorization, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("reference", reference),
		zap.String("email", email),
		zap.Int64("amount", amount),
	)

	body := map[string]interface{}{
		"reference": reference,
		"email":     email,
		// Paystack expects the smallest currency unit (kobo).
		"amount":   amount * 100,
		"currency": "NGN",
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/transaction/initialize", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, err
	}

	req.Header.Add("Authorization", "Bearer "+g.secretKey)
	req.Header.Add("Content-Type", "application/json")

	log.Info("initializing Paystack transaction")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("Paystack request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read paystack response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("Paystack returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", respBody),
		)
		return nil, fmt.Errorf("paystack error: %s", string(respBody))
	}

	var res struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			AuthorizationURL string `json:"authorization_url"`
			AccessCode       string `json:"access_code"`
			Reference        string `json:"reference"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &res); err != nil {
		log.Error("failed decoding Paystack response", zap.Error(err))
		return nil, err
	}

	if !res.Status {
		return nil, fmt.Errorf("paystack error: %s", res.Message)
	}

	log.Info("Paystack transaction initialized",
		zap.String("access_code", res.Data.AccessCode),
	)

	return &Authorization{
		AuthorizationURL: res.Data.AuthorizationURL,
		AccessCode:       res.Data.AccessCode,
		Reference:        res.Data.Reference,
	}, nil
}

func (g *paystackGateway) VerifySignature(body []byte, signature string) error {
	mac := hmac.New(sha512.New, []byte(g.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
