package paymee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client client HTTP vers la passerelle de paiement Paymee
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient crée un nouveau client Paymee
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// InitPayment crée un ordre de paiement et renvoie le lien de paiement
// à transmettre au client final
func (c *Client) InitPayment(ctx context.Context, request InitPaymentRequest) (*InitPaymentResponse, error) {
	url := fmt.Sprintf("%s/api/v1/payments", c.baseURL)

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInvalidResponse, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrGatewayUnavailable, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	// Traitement des codes de statut
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// On continue le traitement
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: order_id=%s", ErrUnauthorized, request.OrderID)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrGatewayUnavailable, resp.StatusCode, string(respBody))
	}

	var result InitPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if result.PayURL == "" || result.PaymentRef == "" {
		return nil, fmt.Errorf("%w: empty pay_url or payment_ref for order_id=%s", ErrInvalidResponse, request.OrderID)
	}

	c.log.Info("Payment order initialized: order_id=%s, payment_ref=%s", request.OrderID, result.PaymentRef)
	return &result, nil
}

// GetPayment interroge la passerelle sur l'état d'un paiement.
// C'est toujours cette réponse qui fait foi, jamais les paramètres
// du callback.
func (c *Client) GetPayment(ctx context.Context, paymentRef string) (*Payment, error) {
	url := fmt.Sprintf("%s/api/v1/payments/%s", c.baseURL, paymentRef)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrGatewayUnavailable, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// On continue le traitement
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: payment_ref=%s", ErrUnauthorized, paymentRef)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: payment_ref=%s", ErrPaymentNotFound, paymentRef)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrGatewayUnavailable, resp.StatusCode, string(respBody))
	}

	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &payment, nil
}
