package notifservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// types d'événements notifiés aux clients et à l'agence
const (
	EventReservationConfirmed  = "reservation_confirmed"
	EventReservationCancelled  = "reservation_cancelled"
	EventProlongationAccepted  = "prolongation_accepted"
	EventProlongationRejected  = "prolongation_rejected"
	EventPaymentLinkCreated    = "payment_link_created"
	EventPaymentConfirmed      = "payment_confirmed"
)

// Logger contrat de journalisation du client
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Event notification à destination d'un utilisateur
type Event struct {
	Type    string                 `json:"type"`
	UserID  int64                  `json:"user_id"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Client client HTTP vers le service de notifications
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient crée un nouveau client du service de notifications
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send envoie une notification. Appelé uniquement après commit de la
// transaction : un échec d'envoi ne remet jamais en cause l'état métier.
func (c *Client) Send(ctx context.Context, event Event) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInvalidResponse, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrServiceUnavailable, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// SendAsync envoie une notification en arrière-plan, après commit.
// Les échecs sont seulement journalisés.
func (c *Client) SendAsync(event Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := c.Send(ctx, event); err != nil {
			c.log.Error("Failed to send notification type=%s user_id=%d: %v", event.Type, event.UserID, err)
			return
		}
		c.log.Info("Notification sent: type=%s user_id=%d", event.Type, event.UserID)
	}()
}
