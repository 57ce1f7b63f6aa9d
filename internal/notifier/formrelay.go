package notifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/prayag-camps/magh-mela-api/internal/logging"
	"github.com/prayag-camps/magh-mela-api/internal/metrics"
)

const DefaultFormRelayURL = "https://api.web3forms.com/submit"

// FormRelayNotifier posts notices to a hosted form-to-email service
// (Web3Forms). It only needs outbound HTTPS, which works on hosts that
// block SMTP.
type FormRelayNotifier struct {
	url       string
	accessKey string
	client    *http.Client
	cb        *gobreaker.CircuitBreaker[[]byte]
}

type formRelayPayload struct {
	AccessKey string `json:"access_key"`
	Subject   string `json:"subject"`
	FromName  string `json:"from_name"`
	Message   string `json:"message"`
}

type formRelayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewFormRelayNotifier(url, accessKey string, client *http.Client) (*FormRelayNotifier, error) {
	if accessKey == "" {
		return nil, fmt.Errorf("form relay access key is empty")
	}
	if url == "" {
		url = DefaultFormRelayURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "form-relay",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
			metrics.RelayBreakerState.Set(breakerValue(to))
		},
	})

	return &FormRelayNotifier{url: url, accessKey: accessKey, client: client, cb: cb}, nil
}

func breakerValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func (n *FormRelayNotifier) Name() string {
	return "form_relay"
}

func (n *FormRelayNotifier) NotifyBooking(ctx context.Context, notice BookingNotice) error {
	return n.send(ctx, notice.Subject(), notice.Text())
}

func (n *FormRelayNotifier) NotifyContact(ctx context.Context, notice ContactNotice) error {
	return n.send(ctx, notice.Subject(), notice.Text())
}

func (n *FormRelayNotifier) send(ctx context.Context, subject, message string) error {
	body, err := json.Marshal(formRelayPayload{
		AccessKey: n.accessKey,
		Subject:   subject,
		FromName:  "Magh Mela Website",
		Message:   message,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal form relay payload: %w", err)
	}

	raw, err := n.cb.Execute(func() ([]byte, error) {
		return n.post(ctx, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("form relay unavailable: %w", err)
		}
		return err
	}

	var result formRelayResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("form relay returned non-JSON body: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("form relay rejected submission: %s", result.Message)
	}
	return nil
}

func (n *FormRelayNotifier) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create form relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach form relay: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("failed to read form relay response: %w", err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("form relay returned status %d", resp.StatusCode)
	}
	return raw, nil
}
