// internal/lookup/resolve-entity/handler_test.go
package resolveentity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entsite/internal/common/httpclient"
	"entsite/internal/common/logger"
)

type stageLoggerAdapter struct {
	logger.Logger
}

func (a *stageLoggerAdapter) With(fields map[string]interface{}) Logger {
	return &stageLoggerAdapter{a.Logger.With(fields)}
}

func testLogger(t *testing.T) Logger {
	return &stageLoggerAdapter{logger.NewTestLogger(t)}
}

func createTestConfig(searchURL string) *Config {
	return &Config{
		SearchURL: searchURL,
		QueryType: "1",
		PageSize:  10,
	}
}

func newTestClient() *httpclient.Client {
	return httpclient.New(httpclient.Config{
		Timeout:    2 * time.Second,
		Credential: "session=test",
	})
}

func TestResolve_FirstMatchWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "session=test", r.Header.Get("Cookie"))

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "1", req.QueryType)
		assert.Equal(t, "Acme Holdings", req.SearchKey)
		assert.Equal(t, 1, req.PageNo)
		assert.Equal(t, 10, req.Range)
		assert.JSONEq(t, `{"status":"","sort_field":""}`, req.SelectConditionData)

		w.Write([]byte(`{"data":{"list":[
			{"entName":"Acme Holdings Ltd","entid":"e-100"},
			{"entName":"Acme Trading Co","entid":"e-200"}
		]}}`))
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), newTestClient(), testLogger(t))

	entity := handler.Resolve(context.Background(), "Acme Holdings")
	require.NotNil(t, entity)
	assert.Equal(t, "Acme Holdings Ltd", entity.Name)
	assert.Equal(t, "e-100", entity.ID)
}

func TestResolve_EmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"list":[]}}`))
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), newTestClient(), testLogger(t))

	assert.Nil(t, handler.Resolve(context.Background(), "NoSuchCo"))
}

func TestResolve_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), newTestClient(), testLogger(t))

	assert.Nil(t, handler.Resolve(context.Background(), "Acme"))
}

func TestResolve_MissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"list":[{"entName":"","entid":""}]}}`))
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), newTestClient(), testLogger(t))

	assert.Nil(t, handler.Resolve(context.Background(), "Acme"))
}

func TestResolve_MissingDataObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":401,"msg":"session expired"}`))
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), newTestClient(), testLogger(t))

	assert.Nil(t, handler.Resolve(context.Background(), "Acme"))
}

func TestResolve_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), newTestClient(), testLogger(t))

	assert.Nil(t, handler.Resolve(context.Background(), "Acme"))
}
