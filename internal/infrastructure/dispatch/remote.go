package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/speedparts/storefront/internal/domain/order"
)

// maxRemoteResponseSize limits the response body drained from the remote
// endpoint.
const maxRemoteResponseSize = 1 * 1024 * 1024

// orderPayload is the structured wire form of an order, matching the shape
// the submission endpoint expects.
type orderPayload struct {
	Customer customerPayload `json:"customer"`
	Delivery deliveryPayload `json:"delivery"`
	Notes    string          `json:"notes,omitempty"`
	Items    []itemPayload   `json:"items"`
	Total    decimal.Decimal `json:"total"`
}

type customerPayload struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type deliveryPayload struct {
	Method  string `json:"method"`
	Address string `json:"address"`
}

type itemPayload struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	PartNumber string          `json:"part_number"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
}

func newOrderPayload(o *order.Order) orderPayload {
	items := make([]itemPayload, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, itemPayload{
			ID:         item.ProductID,
			Name:       item.Name,
			PartNumber: item.PartNumber,
			Quantity:   item.Quantity,
			Price:      item.UnitPrice,
		})
	}
	return orderPayload{
		Customer: customerPayload{Name: o.Customer.Name, Phone: o.Customer.Phone},
		Delivery: deliveryPayload{Method: o.Delivery.Method().String(), Address: o.Delivery.AddressOrNA()},
		Notes:    o.Notes,
		Items:    items,
		Total:    o.Total,
	}
}

// RemoteClient submits orders to the configured remote endpoint
type RemoteClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewRemoteClient creates a client for the given submission endpoint
func NewRemoteClient(endpoint string, timeout time.Duration) *RemoteClient {
	return &RemoteClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Submit POSTs the structured order payload. Any 2xx response is success;
// everything else is an error.
func (c *RemoteClient) Submit(ctx context.Context, o *order.Order) error {
	body, err := json.Marshal(newOrderPayload(o))
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxRemoteResponseSize))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("remote submission returned status %d", resp.StatusCode)
	}
	return nil
}
