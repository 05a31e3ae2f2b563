package orderclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pos-inventory/internal/model"
)

func sampleOrder() *model.Order {
	return &model.Order{
		BaseModel:    model.BaseModel{ID: "ord_1"},
		CustomerName: "Walk-in",
		Method:       model.PayCash,
		Amount:       decimal.NewFromInt(40),
		Status:       model.OrderCompleted,
		Items:        []model.OrderItem{{ProductID: "p1", ProductName: "Shirt", Quantity: 2, Price: decimal.NewFromInt(20)}},
	}
}

func TestCreateSellSuccess(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sells/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"sell_9"}}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL + "/"}, nil)
	data, err := c.CreateSell(context.Background(), sampleOrder())
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"id": "sell_9"}, data)
	assert.Equal(t, "Walk-in", got["customerName"])
	assert.Equal(t, float64(40), got["amount"])
}

func TestCreateSellServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Out of stock"}`))
	}))
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL}, nil).CreateSell(context.Background(), sampleOrder())

	var remote *RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusInternalServerError, remote.StatusCode)
	assert.Equal(t, "Out of stock", remote.Error())
}

func TestCreateSellErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL}, nil).CreateSell(context.Background(), sampleOrder())

	var remote *RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Contains(t, remote.Message, "502")
}

func TestCreateSellNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(Config{BaseURL: url, Timeout: time.Second}, nil).CreateSell(context.Background(), sampleOrder())
	assert.ErrorIs(t, err, ErrNetwork)
}
