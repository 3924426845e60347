package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glosso-dev/glosso/internal/glossary"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewHTTPClient(server.URL, 5*time.Second, 0)
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestHTTPClient_GetAll(t *testing.T) {
	entries := []glossary.Entry{
		{
			ID: "1",
			EN: []glossary.WordEntry{{Word: "house"}},
			DE: []glossary.WordEntry{{Word: "Haus"}},
		},
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/getAll", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(entries))
	})

	got, err := client.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestHTTPClient_Search(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "haus", r.URL.Query().Get("q"))
		assert.Equal(t, "de", r.URL.Query().Get("lang"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"2","en":[{"word":"house"}],"de":[{"word":"Haus"}]}]`))
	})

	got, err := client.Search(context.Background(), "haus", glossary.LanguageGerman)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestHTTPClient_Create(t *testing.T) {
	tests := []struct {
		name              string
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)
		wantEntry         glossary.Entry
		wantErr           bool
		wantAPIMessage    string
	}{
		{
			name: "Success returns the created item",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/create", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var body glossary.Entry
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Empty(t, body.ID)
				assert.Equal(t, "house", body.EN[0].Word)

				body.ID = "10"
				w.Header().Set("Content-Type", "application/json")
				require.NoError(t, json.NewEncoder(w).Encode(itemResponse{Item: body}))
			},
			wantEntry: glossary.Entry{
				ID: "10",
				EN: []glossary.WordEntry{{Word: "house"}},
				DE: []glossary.WordEntry{{Word: "Haus"}},
			},
		},
		{
			name: "Business error body surfaces as APIError",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(`{"message":"entry already exists"}`))
			},
			wantErr:        true,
			wantAPIMessage: "entry already exists",
		},
		{
			name: "Server error without message body",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				tc.mockServerHandler(t, w, r)
			})

			got, err := client.Create(context.Background(), glossary.Entry{
				EN: []glossary.WordEntry{{Word: "house"}},
				DE: []glossary.WordEntry{{Word: "Haus"}},
			})

			if tc.wantErr {
				require.Error(t, err)
				if tc.wantAPIMessage != "" {
					var apiErr *APIError
					require.ErrorAs(t, err, &apiErr)
					assert.Equal(t, tc.wantAPIMessage, apiErr.Message)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantEntry, got)
		})
	}
}

func TestHTTPClient_Update(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/update/5", r.URL.Path)

		var body glossary.Entry
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		body.ID = "5"
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(itemResponse{Item: body}))
	})

	got, err := client.Update(context.Background(), "5", glossary.Entry{
		EN: []glossary.WordEntry{{Word: "tree"}},
		DE: []glossary.WordEntry{{Word: "Baum"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "5", got.ID)
}

func TestHTTPClient_Delete(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    bool
	}{
		{name: "Success", statusCode: http.StatusNoContent},
		{name: "Not found", statusCode: http.StatusNotFound, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/delete/3", r.URL.Path)
				w.WriteHeader(tc.statusCode)
			})

			err := client.Delete(context.Background(), "3")
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestHTTPClient_DeleteMany(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/delete-multiple", r.URL.Path)

		var body deleteManyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"2", "3"}, body.IDs)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"2 entries deleted"}`))
	})

	err := client.DeleteMany(context.Background(), []string{"2", "3"})
	assert.NoError(t, err)
}

func TestHTTPClient_Export(t *testing.T) {
	blob := `[{"en":[{"word":"house"}],"de":[{"word":"Haus"}]}]`

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/export", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(blob))
	})

	got, err := client.Export(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, blob, string(got))
}

func TestHTTPClient_GetAll_RetriesServerErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	client := NewHTTPClient(server.URL, 5*time.Second, 2)
	t.Cleanup(func() {
		_ = client.Close()
	})

	got, err := client.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 2, calls)
}

func TestIsRetryableError(t *testing.T) {
	assert.False(t, isRetryableError(nil))
	assert.True(t, isRetryableError(errors.New("dial tcp: connection refused")))
	assert.True(t, isRetryableError(errors.New("response error 503: unavailable")))
	assert.False(t, isRetryableError(errors.New("response error 404: not found")))
	assert.False(t, isRetryableError(&APIError{StatusCode: 400, Message: "bad"}))
}
