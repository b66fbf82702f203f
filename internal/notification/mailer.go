package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"emeraldscents-be/internal/logger"

	"go.uber.org/zap"
)

// Mailer delivers transactional email. Implementations must be safe for
// concurrent use; callers treat every send as best-effort.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type httpMailer struct {
	apiKey     string
	baseURL    string
	sender     string
	httpClient *http.Client
}

func NewHTTPMailer(apiKey, baseURL, sender string) Mailer {
	if apiKey == "" {
		logger.L().Warn("mail API key is empty, sends will fail")
	}

	return &httpMailer{
		apiKey:  apiKey,
		baseURL: baseURL,
		sender:  sender,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (m *httpMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("to", to),
		zap.String("subject", subject),
	)

	body := map[string]interface{}{
		"from":    m.sender,
		"to":      []string{to},
		"subject": subject,
		"html":    htmlBody,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", m.baseURL+"/emails", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("failed creating mail request", zap.Error(err))
		return err
	}

	req.Header.Add("Authorization", "Bearer "+m.apiKey)
	req.Header.Add("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		log.Error("mail provider request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read mail provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("mail provider returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", respBody),
		)
		return fmt.Errorf("mail provider error: %s", string(respBody))
	}

	log.Info("email dispatched")
	return nil
}
