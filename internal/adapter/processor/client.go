package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	domainErrors "github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/errors"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/model"
)

// TooManyRequestsError represents rate limiting signal from the processor.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes the payment processor operations the storefront core needs:
// payment confirmation lookup plus the mirrored catalog read/write contract.
type Client interface {
	GetPaymentStatus(ctx context.Context, reference string) (*model.PaymentConfirmation, error)
	FindEntryByInternalID(ctx context.Context, internalID string) (*model.CatalogEntry, error)
	CreateEntry(ctx context.Context, entry model.CatalogEntry) (*model.CatalogEntry, error)
	UpdateEntry(ctx context.Context, externalID string, entry model.CatalogEntry) error
	ListActivePrices(ctx context.Context, externalID string) ([]model.CatalogPrice, error)
	DeactivatePrice(ctx context.Context, priceID string) error
	CreatePrice(ctx context.Context, externalID string, amount int64, currency string) (*model.CatalogPrice, error)
}

// HTTPClient implements Client via the processor's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// metadataInternalID is the metadata key carrying the back-reference to the
// internal product. It is the only identity link; names are never matched.
const metadataInternalID = "internal_id"

type paymentResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type entryPayload struct {
	ID          string            `json:"id,omitempty"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Images      []string          `json:"images,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type entryListResponse struct {
	Data []entryPayload `json:"data"`
}

type pricePayload struct {
	ID       string `json:"id,omitempty"`
	Entry    string `json:"entry,omitempty"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Active   bool   `json:"active"`
}

type priceListResponse struct {
	Data []pricePayload `json:"data"`
}

// NewHTTPClient creates an HTTP processor client with default timeout.
func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse processor url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("processor url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// GetPaymentStatus queries the processor for a payment confirmation.
// An unknown reference is reported as status not_found, not as an error.
func (c *HTTPClient) GetPaymentStatus(ctx context.Context, reference string) (*model.PaymentConfirmation, error) {
	resp, err := c.do(ctx, http.MethodGet, path.Join("/v1/payments/", reference), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var data paymentResponse
		if err := decodeBody(resp.Body, &data); err != nil {
			return nil, err
		}
		return &model.PaymentConfirmation{
			Reference: data.ID,
			Status:    model.PaymentStatus(data.Status),
			Amount:    data.Amount,
			Currency:  data.Currency,
		}, nil
	case http.StatusNotFound:
		return &model.PaymentConfirmation{Reference: reference, Status: model.PaymentStatusNotFound}, nil
	default:
		return nil, c.unexpectedStatus("payment lookup", resp)
	}
}

// FindEntryByInternalID looks up the catalog entry whose metadata back-reference
// matches the internal product identifier.
func (c *HTTPClient) FindEntryByInternalID(ctx context.Context, internalID string) (*model.CatalogEntry, error) {
	endpoint := "/v1/catalog/entries?" + url.Values{metadataInternalID: {internalID}}.Encode()
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.unexpectedStatus("entry lookup", resp)
	}

	var list entryListResponse
	if err := decodeBody(resp.Body, &list); err != nil {
		return nil, err
	}
	if len(list.Data) == 0 {
		return nil, domainErrors.ErrNotFound
	}

	entry := toEntry(list.Data[0])
	return &entry, nil
}

// CreateEntry registers a new catalog entry mirroring an internal product.
func (c *HTTPClient) CreateEntry(ctx context.Context, entry model.CatalogEntry) (*model.CatalogEntry, error) {
	payload := entryPayload{
		Name:        entry.Name,
		Description: entry.Description,
		Images:      entry.Images,
		Metadata:    map[string]string{metadataInternalID: entry.InternalID},
	}

	resp, err := c.do(ctx, http.MethodPost, "/v1/catalog/entries", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.unexpectedStatus("entry create", resp)
	}

	var data entryPayload
	if err := decodeBody(resp.Body, &data); err != nil {
		return nil, err
	}
	created := toEntry(data)
	return &created, nil
}

// UpdateEntry overwrites the display fields of an existing entry. Safe to
// re-run with unchanged fields.
func (c *HTTPClient) UpdateEntry(ctx context.Context, externalID string, entry model.CatalogEntry) error {
	payload := entryPayload{
		Name:        entry.Name,
		Description: entry.Description,
		Images:      entry.Images,
		Metadata:    map[string]string{metadataInternalID: entry.InternalID},
	}

	resp, err := c.do(ctx, http.MethodPost, path.Join("/v1/catalog/entries/", externalID), payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.unexpectedStatus("entry update", resp)
	}
	return nil
}

// ListActivePrices returns the currently-active prices attached to an entry.
func (c *HTTPClient) ListActivePrices(ctx context.Context, externalID string) ([]model.CatalogPrice, error) {
	endpoint := path.Join("/v1/catalog/entries/", externalID, "/prices") + "?active=true"
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.unexpectedStatus("price list", resp)
	}

	var list priceListResponse
	if err := decodeBody(resp.Body, &list); err != nil {
		return nil, err
	}

	prices := make([]model.CatalogPrice, 0, len(list.Data))
	for _, p := range list.Data {
		prices = append(prices, model.CatalogPrice{
			ID:       p.ID,
			EntryID:  p.Entry,
			Amount:   p.Amount,
			Currency: p.Currency,
			Active:   p.Active,
		})
	}
	return prices, nil
}

// DeactivatePrice retires a price record. The record is kept for history.
func (c *HTTPClient) DeactivatePrice(ctx context.Context, priceID string) error {
	resp, err := c.do(ctx, http.MethodPost, path.Join("/v1/prices/", priceID), map[string]bool{"active": false})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.unexpectedStatus("price deactivate", resp)
	}
	return nil
}

// CreatePrice attaches a new active price to an entry.
func (c *HTTPClient) CreatePrice(ctx context.Context, externalID string, amount int64, currency string) (*model.CatalogPrice, error) {
	payload := pricePayload{Amount: amount, Currency: currency, Active: true}

	resp, err := c.do(ctx, http.MethodPost, path.Join("/v1/catalog/entries/", externalID, "/prices"), payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.unexpectedStatus("price create", resp)
	}

	var data pricePayload
	if err := decodeBody(resp.Body, &data); err != nil {
		return nil, err
	}
	return &model.CatalogPrice{
		ID:       data.ID,
		EntryID:  data.Entry,
		Amount:   data.Amount,
		Currency: data.Currency,
		Active:   data.Active,
	}, nil
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, payload any) (*http.Response, error) {
	target := *c.baseURL
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("build processor url: %w", err)
	}
	target.Path = path.Join(target.Path, parsed.Path)
	target.RawQuery = parsed.RawQuery

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return c.httpClient.Do(req)
}

func (c *HTTPClient) unexpectedStatus(op string, resp *http.Response) error {
	if resp.StatusCode == http.StatusTooManyRequests {
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	}
	body, _ := io.ReadAll(resp.Body)
	c.logger.Error("processor request failed",
		slog.String("op", op),
		slog.Int("status", resp.StatusCode),
		slog.String("body", string(body)),
	)
	return fmt.Errorf("processor %s: %s", op, resp.Status)
}

func decodeBody(r io.Reader, v any) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

func toEntry(p entryPayload) model.CatalogEntry {
	return model.CatalogEntry{
		ExternalID:  p.ID,
		InternalID:  p.Metadata[metadataInternalID],
		Name:        p.Name,
		Description: p.Description,
		Images:      p.Images,
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
