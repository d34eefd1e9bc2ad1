package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

const (
	functionsPath     = "/functions/v1/"
	defaultTimeout    = 20 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = 500 * time.Millisecond
	maxErrorBodyBytes = 4 << 10
)

// APIError is a non-2xx response from a game function
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client calls the game functions over HTTP
type Client struct {
	BaseURL string
	HTTP    *http.Client
	APIKey  string

	maxRetries int
	retryDelay time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.HTTP = h }
}

// WithAPIKey sends key as apikey and bearer token
func WithAPIKey(key string) Option {
	return func(c *Client) { c.APIKey = key }
}

// WithRetries sets how often idempotent calls are retried on transport or 5xx errors
func WithRetries(n int, delay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = n
		c.retryDelay = delay
	}
}

// New creates a new functions client
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTP:       &http.Client{Timeout: defaultTimeout},
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call posts body to the named function and decodes a 200 response into out.
// Only idempotent calls are retried.
func (c *Client) call(ctx context.Context, name string, body, out any, idempotent bool) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal body: %w", err)
	}

	attempts := 1
	if idempotent {
		attempts += c.maxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<uint(attempt-1))
			slog.Info("Retrying API request", "attempt", attempt, "function", name, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		retry, err := c.do(ctx, name, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry || ctx.Err() != nil {
			return err
		}
		slog.Warn("API request failed", "function", name, "attempt", attempt, "error", err)
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// do performs one request; retry reports whether the failure is transient
func (c *Client) do(ctx context.Context, name string, payload []byte, out any) (retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+functionsPath+name, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("apikey", c.APIKey)
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode >= http.StatusInternalServerError, decodeError(resp)
	}

	if out == nil {
		return false, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("failed to decode %s response: %w", name, err)
	}
	return false, nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	var body struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

type userRequest struct {
	UserID string `json:"userId"`
}

// CreateNewUser creates the account, or renames it if it already exists
func (c *Client) CreateNewUser(ctx context.Context, userID, name string) (*domain.User, error) {
	var out dataEnvelope[*domain.User]
	req := map[string]string{"userId": userID, "name": name}
	if err := c.call(ctx, "create_new_user", req, &out, true); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// UpdateUserData renames a user
func (c *Client) UpdateUserData(ctx context.Context, userID, name string) (*domain.User, error) {
	var out struct {
		Success bool         `json:"success"`
		User    *domain.User `json:"user"`
	}
	req := map[string]string{"userId": userID, "name": name}
	if err := c.call(ctx, "update_user_data", req, &out, true); err != nil {
		return nil, err
	}
	return out.User, nil
}

// GetGameState fetches the authoritative game state
func (c *Client) GetGameState(ctx context.Context, userID string) (*domain.GameState, error) {
	var out dataEnvelope[*domain.GameState]
	if err := c.call(ctx, "get_game_state", userRequest{UserID: userID}, &out, true); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetFarmState fetches plots with derived growth progress
func (c *Client) GetFarmState(ctx context.Context, userID string) (*domain.FarmState, error) {
	var out domain.FarmState
	if err := c.call(ctx, "get_farm_state", userRequest{UserID: userID}, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCatalog fetches every seed, animal and building type
func (c *Client) GetCatalog(ctx context.Context) (*domain.Catalog, error) {
	var out dataEnvelope[*domain.Catalog]
	if err := c.call(ctx, "get_catalog", struct{}{}, &out, true); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// PlantSeed plants seedCode on plotID
func (c *Client) PlantSeed(ctx context.Context, userID, plotID, seedCode string) (*domain.PlantResult, error) {
	var out domain.PlantResult
	req := map[string]string{"userId": userID, "plotId": plotID, "seedCode": seedCode}
	if err := c.call(ctx, "plant_seed", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// HarvestCrop harvests a ready crop
func (c *Client) HarvestCrop(ctx context.Context, userID, cropID string) (*domain.HarvestResult, error) {
	var out domain.HarvestResult
	req := map[string]string{"userId": userID, "cropId": cropID}
	if err := c.call(ctx, "harvest_crop", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// UnlockPlot unlocks plotID
func (c *Client) UnlockPlot(ctx context.Context, userID, plotID string) (*domain.UnlockResult, error) {
	var out domain.UnlockResult
	req := map[string]string{"userId": userID, "plotId": plotID}
	if err := c.call(ctx, "unlock_plot", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

type tradeRequest struct {
	UserID   string          `json:"userId"`
	ItemType domain.ItemType `json:"itemType"`
	ItemCode string          `json:"itemCode"`
	Quantity int             `json:"quantity"`
}

// PurchaseItem buys quantity of a seed or animal
func (c *Client) PurchaseItem(ctx context.Context, userID string, itemType domain.ItemType, itemCode string, quantity int) (*domain.PurchaseResult, error) {
	var out domain.PurchaseResult
	req := tradeRequest{UserID: userID, ItemType: itemType, ItemCode: itemCode, Quantity: quantity}
	if err := c.call(ctx, "purchase_item", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// SellItem sells quantity of an inventory item
func (c *Client) SellItem(ctx context.Context, userID string, itemType domain.ItemType, itemCode string, quantity int) (*domain.SellResult, error) {
	var out domain.SellResult
	req := tradeRequest{UserID: userID, ItemType: itemType, ItemCode: itemCode, Quantity: quantity}
	if err := c.call(ctx, "sell_item", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// PurchaseBuilding buys a building at level 1
func (c *Client) PurchaseBuilding(ctx context.Context, userID, buildingCode string) (*domain.BuildingPurchaseResult, error) {
	var out domain.BuildingPurchaseResult
	req := map[string]string{"userId": userID, "buildingCode": buildingCode}
	if err := c.call(ctx, "purchase_building", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpgradeBuilding raises an owned building by one level
func (c *Client) UpgradeBuilding(ctx context.Context, userID, buildingCode string) (*domain.BuildingUpgradeResult, error) {
	var out domain.BuildingUpgradeResult
	req := map[string]string{"userId": userID, "buildingCode": buildingCode}
	if err := c.call(ctx, "upgrade_building", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUserBuildings lists owned buildings with their current capacity
func (c *Client) GetUserBuildings(ctx context.Context, userID string) ([]domain.UserBuildingDetail, error) {
	var out dataEnvelope[[]domain.UserBuildingDetail]
	if err := c.call(ctx, "get_user_buildings", userRequest{UserID: userID}, &out, true); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetUserAnimals lists owned animals
func (c *Client) GetUserAnimals(ctx context.Context, userID string) ([]domain.UserAnimal, error) {
	var out dataEnvelope[[]domain.UserAnimal]
	if err := c.call(ctx, "get_user_animals", userRequest{UserID: userID}, &out, true); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Autosave submits a batch of queued actions. Replays are safe because the
// server records processed action ids.
func (c *Client) Autosave(ctx context.Context, userID string, actions []domain.GameAction) (*domain.AutosaveResponse, error) {
	var out domain.AutosaveResponse
	req := struct {
		UserID  string              `json:"userId"`
		Actions []domain.GameAction `json:"actions"`
	}{UserID: userID, Actions: actions}
	if err := c.call(ctx, "autosave", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}
