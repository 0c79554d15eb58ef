package keycard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockPrinter_ConsumesStock(t *testing.T) {
	printer := NewMockPrinter(3, nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, printer.PrintKeycard(101))
	}
	assert.Equal(t, 0, printer.RemainingCards())

	err := printer.PrintKeycard(101)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPrinterUnavailable)
}

func TestMockPrinter_Reload(t *testing.T) {
	printer := NewMockPrinter(0, nil)

	require.Error(t, printer.PrintKeycard(101))

	printer.Reload(50)
	require.NoError(t, printer.PrintKeycard(101))
	assert.Equal(t, 49, printer.RemainingCards())
}

func TestMockPrinter_IsLow(t *testing.T) {
	printer := NewMockPrinter(LowCardThreshold+1, nil)

	assert.False(t, printer.IsLow())
	require.NoError(t, printer.PrintKeycard(101))
	assert.True(t, printer.IsLow())
}

func TestNetworkPrinter_Success(t *testing.T) {
	var received printRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/print", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(printResponse{
			Status:         "success",
			RemainingCards: 80,
		})
	}))
	defer server.Close()

	printer := NewNetworkPrinter(NetworkConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
	})

	require.NoError(t, printer.PrintKeycard(204))
	assert.Equal(t, 204, received.RoomNumber)
	assert.Equal(t, "guest", received.CardType)
}

func TestNetworkPrinter_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	printer := NewNetworkPrinter(NetworkConfig{BaseURL: server.URL})

	err := printer.PrintKeycard(204)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPrinterUnavailable)
}

func TestNetworkPrinter_JobRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(printResponse{
			Status:  "failed",
			Comment: "encoder out of cards",
			ErrCode: "E102",
		})
	}))
	defer server.Close()

	printer := NewNetworkPrinter(NetworkConfig{BaseURL: server.URL})

	err := printer.PrintKeycard(204)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPrinterUnavailable)
	assert.Contains(t, err.Error(), "encoder out of cards")
}

func TestNetworkPrinter_Unreachable(t *testing.T) {
	printer := NewNetworkPrinter(NetworkConfig{BaseURL: "http://127.0.0.1:1"})

	err := printer.PrintKeycard(204)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPrinterUnavailable)
}
