package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

const testUserID = "6f1c2b1e-3a4d-4e59-9a2b-1c2d3e4f5a6b"

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, WithRetries(2, time.Millisecond)), srv
}

func TestClient_GetGameState_UnwrapsData(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/functions/v1/get_game_state", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, testUserID, body["userId"])

		_, _ = w.Write([]byte(`{"data":{"user":{"id":"` + testUserID + `","coin":500,"level":1},"inventory":[],"farm":{"plots":[]}}}`))
	})

	gs, err := c.GetGameState(context.Background(), testUserID)
	require.NoError(t, err)
	require.NotNil(t, gs.User)
	assert.Equal(t, 500, gs.User.Coin)
	assert.Equal(t, 1, gs.User.Level)
}

func TestClient_SendsAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":{"seeds":[],"animals":[],"buildings":[]}}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", WithAPIKey("secret"))
	cat, err := c.GetCatalog(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cat.Seeds)
}

func TestClient_ErrorBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Not enough coins"}`))
	})

	_, err := c.PlantSeed(context.Background(), testUserID, "plot", "wheat")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, domain.ErrMsgInsufficientFunds, apiErr.Message)
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.False(t, IsStatus(err, http.StatusNotFound))
}

func TestClient_ErrorWithoutJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetFarmState(context.Background(), testUserID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusText(http.StatusNotFound), apiErr.Message)
}

func TestClient_RetriesIdempotentCalls(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"state":{"user":null,"inventory":[],"farm":{"plots":[]}},"syncedAt":42}`))
	})

	resp, err := c.Autosave(context.Background(), testUserID, []domain.GameAction{{ID: "plant-p1-1", Type: domain.ActionPlantSeed}})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(42), resp.SyncedAt)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.GetUserBuildings(context.Background(), testUserID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries exceeded")
	assert.True(t, IsStatus(err, http.StatusServiceUnavailable))
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryMutations(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Something went wrong"}`))
	})

	_, err := c.PurchaseItem(context.Background(), testUserID, domain.ItemTypeSeed, "wheat", 2)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Invalid request"}`))
	})

	_, err := c.GetUserAnimals(context.Background(), testUserID)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_TradeBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/functions/v1/sell_item", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "seed", body["itemType"])
		assert.Equal(t, "carrot", body["itemCode"])
		assert.EqualValues(t, 3, body["quantity"])

		_, _ = w.Write([]byte(`{"success":true,"coins_earned":30,"new_coin_balance":530,"quantity_sold":3}`))
	})

	res, err := c.SellItem(context.Background(), testUserID, domain.ItemTypeSeed, "carrot", 3)
	require.NoError(t, err)
	assert.Equal(t, 30, res.CoinsEarned)
	assert.Equal(t, 530, res.NewCoinBalance)
	assert.Equal(t, 3, res.QuantitySold)
}

func TestClient_UpdateUserData(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"user":{"id":"` + testUserID + `","name":"Ada"}}`))
	})

	u, err := c.UpdateUserData(context.Background(), testUserID, "Ada")
	require.NoError(t, err)
	require.NotNil(t, u.Name)
	assert.Equal(t, "Ada", *u.Name)
}

func TestClient_ContextCancelStopsRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, WithRetries(5, time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.GetGameState(ctx, testUserID)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
