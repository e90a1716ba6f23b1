package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-backoffice/internal/config"
)

func TestSend_PostsForm(t *testing.T) {
	var got http.Header
	var form map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		got = r.Header
		form = map[string]string{
			"to":      r.PostForm.Get("to"),
			"message": r.PostForm.Get("message"),
			"api_key": r.PostForm.Get("api_key"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(config.SMSConfig{APIURL: srv.URL, APIKey: "k-123"})
	err := c.Send(context.Background(), "+233200000000", "stock is low")
	require.NoError(t, err)

	assert.Contains(t, got.Get("Content-Type"), "application/x-www-form-urlencoded")
	assert.Equal(t, map[string]string{
		"to":      "+233200000000",
		"message": "stock is low",
		"api_key": "k-123",
	}, form)
}

func TestSend_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad key"}`))
	}))
	defer srv.Close()

	c := NewClient(config.SMSConfig{APIURL: srv.URL, APIKey: "wrong"})
	err := c.Send(context.Background(), "+233200000000", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
	assert.Contains(t, err.Error(), "bad key")
}

func TestSend_NoRecipient(t *testing.T) {
	c := NewClient(config.SMSConfig{APIURL: "http://127.0.0.1:1", APIKey: "k"})
	assert.ErrorIs(t, c.Send(context.Background(), "", "hi"), ErrNoRecipient)
}
