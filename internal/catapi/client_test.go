package catapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "catgw/internal/errors"
)

func TestClient_RelaysUpstreamJSON(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-123", r.Header.Get("x-api-key"))
		switch r.URL.Path {
		case "/breeds":
			w.Write([]byte(`[{"id":"beng","name":"Bengal"}]`))
		case "/breeds/search":
			assert.Equal(t, "beng", r.URL.Query().Get("q"))
			w.Write([]byte(`[{"id":"beng"}]`))
		case "/images/search":
			assert.Equal(t, "beng", r.URL.Query().Get("breed_id"))
			assert.Equal(t, "3", r.URL.Query().Get("limit"))
			w.Write([]byte(`[{"url":"https://example.com/cat.jpg"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "key-123")
	ctx := context.Background()

	breeds, err := client.Breeds(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"beng","name":"Bengal"}]`, string(breeds))

	results, err := client.SearchBreeds(ctx, "beng")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"beng"}]`, string(results))

	images, err := client.ImagesByBreed(ctx, "beng", 3)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"url":"https://example.com/cat.jpg"}]`, string(images))
}

func TestClient_UnknownBreedIsNotFound(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "key-123")

	_, err := client.BreedByID(context.Background(), "nope")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestClient_UpstreamFailureIsNotOperational(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "key-123")

	_, err := client.Breeds(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	assert.False(t, errors.As(err, &appErr))
}
