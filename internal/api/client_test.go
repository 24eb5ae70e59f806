package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fjacquet/income-categories/internal/logging"
	"fjacquet/income-categories/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *logging.MockLogger) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logging.NewMockLogger()
	opts = append([]Option{WithLogger(logger)}, opts...)
	c, err := NewClient(srv.URL, opts...)
	require.NoError(t, err)
	c.newRequestID = func() string { return "req-1" }
	return c, logger
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	for _, base := range []string{"ftp://example.com", "://broken", ""} {
		_, err := NewClient(base)
		assert.Error(t, err, base)
	}
}

func TestClient_ListAll(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/income-categories/list", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"data": []models.IncomeCategory{{ID: 1, Name: "Salary"}, {ID: 2, Name: "Rent"}},
		})
	})

	cats, err := c.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.IncomeCategory{{ID: 1, Name: "Salary"}, {ID: 2, Name: "Rent"}}, cats)
}

func TestClient_ListPage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/income-categories", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "side job", r.URL.Query().Get("name"))
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"data": []models.IncomeCategory{{ID: 1, Name: "Side job"}},
			"meta": map[string]int{"last_page": 3, "current_page": 2, "per_page": 10, "total": 21},
		})
	})

	page, err := c.ListPage(context.Background(), 2, 10, "side job")
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	require.NotNil(t, page.Meta)
	assert.Equal(t, models.PageMeta{CurrentPage: 2, LastPage: 3, PerPage: 10, Total: 21}, *page.Meta)
}

func TestClient_ListPage_WithoutMeta(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]interface{}{"data": []models.IncomeCategory{}})
	})

	page, err := c.ListPage(context.Background(), 1, 10, "")
	require.NoError(t, err)
	assert.Nil(t, page.Meta)
	assert.Empty(t, page.Items)
}

func TestClient_Get(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/income-categories/42", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]interface{}{"data": models.IncomeCategory{ID: 42, Name: "Bonus"}})
	})

	cat, err := c.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, models.IncomeCategory{ID: 42, Name: "Bonus"}, cat)
}

func TestClient_Get_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"message": "No query results"})
	})

	_, err := c.Get(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.Contains(t, err.Error(), "No query results")
}

func TestClient_Create_SendsBodyAndToken(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Utilities"}`, string(body))
		writeJSON(t, w, http.StatusCreated, map[string]interface{}{"data": models.IncomeCategory{ID: 3, Name: "Utilities"}})
	}, WithToken("secret"))

	resp, err := c.Create(context.Background(), models.IncomeCategoryInput{Name: "Utilities"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, string(resp.Body), "Utilities")
}

func TestClient_Create_Validation(t *testing.T) {
	c, logger := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, map[string]interface{}{
			"message": "The given data was invalid.",
			"errors":  map[string]interface{}{"name": []string{"already exists"}, "code": "required"},
		})
	})

	_, err := c.Create(context.Background(), models.IncomeCategoryInput{Name: "Utilities"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrHasChild))

	var re *ResponseError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, map[string][]string{"name": {"already exists"}, "code": {"required"}}, re.Errors)
	assert.True(t, logger.HasEntry("WARN", "Request rejected"))
}

func TestClient_Update(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/income-categories/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	resp, err := c.Update(context.Background(), 7, models.IncomeCategoryInput{Name: "Wages"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestClient_Delete(t *testing.T) {
	tests := []struct {
		name     string
		ids      []int64
		wantPath string
	}{
		{name: "single", ids: []int64{5}, wantPath: "/api/income-categories/5"},
		{name: "batch", ids: []int64{1, 2, 3}, wantPath: "/api/income-categories/1,2,3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, tt.wantPath, r.URL.Path)
				w.WriteHeader(http.StatusOK)
			})

			_, err := c.Delete(context.Background(), tt.ids...)
			require.NoError(t, err)
		})
	}
}

func TestClient_Delete_RequiresIDs(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	_, err := c.Delete(context.Background())
	assert.Error(t, err)
}

func TestClient_Delete_HasChild(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, map[string]string{"error_type": ErrorTypeHasChild})
	})

	_, err := c.Delete(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHasChild))
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := c.ListAll(context.Background())
	var re *ResponseError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusBadGateway, re.StatusCode)
	assert.Empty(t, re.Message)
	assert.Equal(t, "<html>bad gateway</html>", string(re.Body))
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := c.ListAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c, err := NewClient(base, WithLogger(logging.NewMockLogger()), WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = c.ListAll(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
	assert.Equal(t, 0, StatusCode(err))

	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, http.MethodGet, ne.Method)
}

func TestClient_CancelledContext(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, WithRateLimit(60))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListAll(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_WithHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"data": []models.IncomeCategory{{ID: 1, Name: "Salary"}},
		})
	}))
	defer srv.Close()

	hc := srv.Client()
	hc.Timeout = 5 * time.Second
	c, err := NewClient(srv.URL, WithLogger(logging.NewMockLogger()), WithHTTPClient(hc), WithTimeout(time.Second))
	require.NoError(t, err)

	cats, err := c.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.IncomeCategory{{ID: 1, Name: "Salary"}}, cats)

	assert.Equal(t, 5*time.Second, hc.Timeout, "caller's client keeps its timeout")
	assert.Equal(t, time.Second, c.httpClient.Timeout)
	assert.Equal(t, hc.Transport, c.httpClient.Transport)
}
