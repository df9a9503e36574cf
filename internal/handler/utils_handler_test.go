package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type responseEnvelope struct {
	Data       json.RawMessage        `json:"data"`
	Error      map[string]interface{} `json:"error"`
	Pagination map[string]interface{} `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

func TestUtilsHandlerSanitize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewUtilsHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/utils/sanitize",
		strings.NewReader(`{"name":"Data Structures & Algorithms!"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Sanitize(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var data map[string]string
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.Equal(t, "data-structures-algorithms", data["slug"])
}

func TestUtilsHandlerSanitizeRejectsEmptySlug(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewUtilsHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/utils/sanitize",
		strings.NewReader(`{"name":"!!!"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Sanitize(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUtilsHandlerBloomKeywords(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewUtilsHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/utils/bloom-keywords", nil)

	handler.BloomKeywords(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var data struct {
		Order    []string            `json:"order"`
		Keywords map[string][]string `json:"keywords"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.Equal(t, []string{"Remember", "Understand", "Apply", "Analyze", "Evaluate", "Create"}, data.Order)
	assert.Contains(t, data.Keywords["Analyze"], "compare")
}

func TestUtilsHandlerThemes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewUtilsHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/utils/themes", nil)

	handler.Themes(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var data []map[string]string
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.Len(t, data, 8)
	assert.Equal(t, "stem", data[0]["type"])
}

func TestUtilsHandlerIncrementVersion(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewUtilsHandler()

	cases := []struct {
		query  string
		status int
		next   string
	}{
		{"version=v1.9", http.StatusOK, "v1.10"},
		{"version=v1.9&type=major", http.StatusOK, "v2.0"},
		{"version=v1.2&type=patch", http.StatusBadRequest, ""},
		{"version=garbage", http.StatusBadRequest, ""},
		{"", http.StatusBadRequest, ""},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/utils/version/increment?"+tc.query, nil)

		handler.IncrementVersion(c)

		assert.Equal(t, tc.status, rec.Code, tc.query)
		if tc.status == http.StatusOK {
			var envelope responseEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			var data map[string]string
			require.NoError(t, json.Unmarshal(envelope.Data, &data))
			assert.Equal(t, tc.next, data["next"], tc.query)
		}
	}
}
