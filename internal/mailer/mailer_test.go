package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/minima-hotel/backoffice-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(baseURL string) *Client {
	return NewClient(&config.MailConfig{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		SenderName:  "Reports",
		SenderEmail: "reports@example.com",
		Timeout:     5,
	}, zap.NewNop())
}

func TestSend(t *testing.T) {
	var captured sendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/smtp/email", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := testClient(server.URL)
	err := client.Send(context.Background(), &Message{
		To:          "manager@example.com",
		ToName:      "Manager",
		Subject:     "Daily report",
		HTMLContent: "<p>hello</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "reports@example.com", captured.Sender.Email)
	assert.Equal(t, "Reports", captured.Sender.Name)
	require.Len(t, captured.To, 1)
	assert.Equal(t, "manager@example.com", captured.To[0].Email)
	assert.Equal(t, "Daily report", captured.Subject)
	assert.Equal(t, "<p>hello</p>", captured.HTMLContent)
}

func TestSendProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"invalid_parameter"}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	err := client.Send(context.Background(), &Message{To: "x@example.com", Subject: "s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "invalid_parameter")
}

func TestSendUnreachable(t *testing.T) {
	client := testClient("http://127.0.0.1:1")
	err := client.Send(context.Background(), &Message{To: "x@example.com", Subject: "s"})
	require.Error(t, err)
}
