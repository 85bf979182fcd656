package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumarlokesh/radix-dictionary/internal/api"
	"github.com/kumarlokesh/radix-dictionary/internal/dictionary"
)

type client struct {
	base string
	http *http.Client
}

func (c *client) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, c.base+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := c.http.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAPI(t *testing.T) {
	dict := dictionary.New()
	server := api.NewServer(":0", dict, zerolog.Nop())
	testServer := httptest.NewServer(server.Handler())
	defer testServer.Close()

	c := &client{base: testServer.URL, http: testServer.Client()}

	t.Run("Health", func(t *testing.T) {
		resp := c.do(t, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Add words", func(t *testing.T) {
		resp := c.do(t, http.MethodPut, "/words/cat", `{"definition":"feline"}`)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp = c.do(t, http.MethodPut, "/words/car", `{"definition":"vehicle"}`)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp = c.do(t, http.MethodPut, "/words/cow", `{"definition":"bovine"}`)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("Reject invalid word and body", func(t *testing.T) {
		resp := c.do(t, http.MethodPut, "/words/Cat", `{"definition":"feline"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp = c.do(t, http.MethodPut, "/words/cat", `not json`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Remove word", func(t *testing.T) {
		resp := c.do(t, http.MethodDelete, "/words/cow", "")
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp = c.do(t, http.MethodGet, "/words/cow", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Get word", func(t *testing.T) {
		resp := c.do(t, http.MethodGet, "/words/cat", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode[map[string]string](t, resp)
		assert.Equal(t, map[string]string{"word": "cat", "definition": "feline"}, body)
	})

	t.Run("Count prefix", func(t *testing.T) {
		resp := c.do(t, http.MethodGet, "/count/ca", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode[struct {
			Prefix string `json:"prefix"`
			Count  int    `json:"count"`
		}](t, resp)
		assert.Equal(t, "ca", body.Prefix)
		assert.Equal(t, 2, body.Count)

		resp = c.do(t, http.MethodGet, "/count", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(2), decode[map[string]any](t, resp)["count"])
	})

	t.Run("Sequence is absent before compress", func(t *testing.T) {
		resp := c.do(t, http.MethodGet, "/words/cat/sequence", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Compress", func(t *testing.T) {
		resp := c.do(t, http.MethodPost, "/compress", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode[map[string]any](t, resp)
		assert.Equal(t, "frozen", body["phase"])
		assert.Equal(t, float64(2), body["words"])
		assert.Equal(t, float64(4), body["nodes"])

		resp = c.do(t, http.MethodPost, "/compress", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Sequence after compress", func(t *testing.T) {
		resp := c.do(t, http.MethodGet, "/words/cat/sequence", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode[struct {
			Sequence string   `json:"sequence"`
			Segments []string `json:"segments"`
		}](t, resp)
		assert.Equal(t, "ca-t", body.Sequence)
		assert.Equal(t, []string{"ca", "t"}, body.Segments)
	})

	t.Run("Mutations conflict after compress", func(t *testing.T) {
		resp := c.do(t, http.MethodPut, "/words/dog", `{"definition":"canine"}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		resp = c.do(t, http.MethodDelete, "/words/cat", "")
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("List words", func(t *testing.T) {
		resp := c.do(t, http.MethodGet, "/words?prefix=c", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode[struct {
			Words []string `json:"words"`
		}](t, resp)
		assert.Equal(t, []string{"car", "cat"}, body.Words)
	})
}

func TestAPI_ConcurrentWrites(t *testing.T) {
	dict := dictionary.New()
	server := api.NewServer(":0", dict, zerolog.Nop())
	testServer := httptest.NewServer(server.Handler())
	defer testServer.Close()

	words := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta"}
	var wg sync.WaitGroup
	for i, w := range words {
		i, w := i, w
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, err := http.NewRequest(http.MethodPut, testServer.URL+"/words/"+w,
				strings.NewReader(fmt.Sprintf(`{"definition":"letter %d"}`, i)))
			if err != nil {
				t.Error(err)
				return
			}
			resp, err := testServer.Client().Do(req)
			if err != nil {
				t.Error(err)
				return
			}
			resp.Body.Close()
		}()
	}
	wg.Wait()

	assert.Equal(t, len(words), dict.CountPrefix(""))
}
