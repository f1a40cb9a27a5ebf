package billclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBill(t *testing.T) {
	var received CreateBillRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/bills", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Bill{
			ID:          1,
			TableNumber: received.TableNumber,
			Total:       received.Total,
			Status:      "open",
			Items: []BillItem{
				{ID: 1, BillID: 1, ProductID: 2, Quantity: 1, Price: 9.00, Product: &Product{ID: 2, Name: "Pad Thai"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	bill, err := client.CreateBill(context.Background(), CreateBillRequest{
		TableNumber: "5",
		Total:       9.00,
		Items:       []BillLine{{ProductID: 2, Quantity: 1, Price: 9.00}},
	})
	require.NoError(t, err)

	assert.Equal(t, "5", received.TableNumber)
	assert.Equal(t, uint(1), bill.ID)
	require.Len(t, bill.Items, 1)
	require.NotNil(t, bill.Items[0].Product)
	assert.Equal(t, "Pad Thai", bill.Items[0].Product.Name)
}

func TestCreateBillServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Failed to create bill"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.CreateBill(context.Background(), CreateBillRequest{TableNumber: "5"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestCompleteBillNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Bill not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.CompleteBill(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListBills(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/bills", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Bill{{ID: 1, TableNumber: "1"}, {ID: 2, TableNumber: "2"}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	bills, err := client.ListBills(context.Background())
	require.NoError(t, err)
	require.Len(t, bills, 2)
}

func TestAuthorizationHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]Bill{})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.Token = "token-123"
	_, err := client.ListBills(context.Background())
	require.NoError(t, err)
}
