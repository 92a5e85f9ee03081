package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guardedEngine(opts GuardOptions, seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(InputGuard(opts))
	echo := func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		*seen = c.Request.URL.RawQuery + "|" + c.Param("slug") + "|" + string(b)
		c.Status(http.StatusOK)
	}
	r.POST("/items/:slug", echo)
	r.GET("/items/:slug", echo)
	return r
}

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"  hello  ":                              "hello",
		"a<script>alert(1)</script>b":            "ab",
		"<SCRIPT type=x>\nx\n</script >tail":     "tail",
		"click javascript:alert(1)":              "click alert(1)",
		`<img src=x onerror="a()">`:              `<img src=x "a()">`,
		"공약 질문입니다":                               "공약 질문입니다",
		"é":                                "é",
	}
	for in, want := range cases {
		assert.Equal(t, want, Sanitize(in), "input %q", in)
	}
}

func TestScreen(t *testing.T) {
	assert.Equal(t, "", screen("진안군 교통 공약이 궁금합니다", 2000))
	assert.Equal(t, "sql_keyword", screen("1; DROP TABLE users", 2000))
	assert.Equal(t, "sql_keyword", screen("ｓｅｌｅｃｔ * from x", 2000), "full-width letters are folded")
	assert.Equal(t, "sql_comment", screen("admin'--", 2000))
	assert.Equal(t, "sql_comment", screen("a /* b", 2000))
	assert.Equal(t, "sql_tautology", screen("x' or 1=1", 2000))
	assert.Equal(t, "too_long", screen(strings.Repeat("가", 11), 10))
	assert.Equal(t, "", screen(strings.Repeat("가", 10), 10), "limit counts runes, not bytes")
	assert.Equal(t, "", screen("selection of candidates", 2000), "keywords match on word boundaries")
}

func TestInputGuard_SanitizesBodyQueryAndParams(t *testing.T) {
	var seen string
	r := guardedEngine(GuardOptions{}, &seen)

	body := `{"message":"  hi <script>x</script>there ","n":12345678901234567890,"tags":[" a ","<b>"],"nested":{"k":"javascript:v"}}`
	req := httptest.NewRequest(http.MethodPost, "/items/%20policy%20?q=%20x%20", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	parts := strings.SplitN(seen, "|", 3)
	require.Len(t, parts, 3)
	assert.Equal(t, "q=x", parts[0])
	assert.Equal(t, "policy", parts[1])

	var got map[string]any
	dec := json.NewDecoder(strings.NewReader(parts[2]))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&got))
	assert.Equal(t, "hi there", got["message"])
	assert.Equal(t, json.Number("12345678901234567890"), got["n"], "numbers keep their exact form")
	assert.Equal(t, []any{"a", "<b>"}, got["tags"], "HTML is not re-escaped")
	assert.Equal(t, map[string]any{"k": "v"}, got["nested"])
}

func TestInputGuard_Rejects(t *testing.T) {
	var seen string
	r := guardedEngine(GuardOptions{MaxFieldLen: 20}, &seen)

	cases := []struct {
		name string
		req  *http.Request
	}{
		{"body keyword", httptest.NewRequest(http.MethodPost, "/items/a", strings.NewReader(`{"m":"union select"}`))},
		{"nested tautology", httptest.NewRequest(http.MethodPost, "/items/a", strings.NewReader(`{"a":[{"b":"x or 1=1"}]}`))},
		{"too long", httptest.NewRequest(http.MethodPost, "/items/a", strings.NewReader(`{"m":"`+strings.Repeat("x", 21)+`"}`))},
		{"query comment", httptest.NewRequest(http.MethodGet, "/items/a?q=a--", nil)},
		{"param keyword", httptest.NewRequest(http.MethodGet, "/items/DROP", nil)},
		{"json key", httptest.NewRequest(http.MethodPost, "/items/a", strings.NewReader(`{"delete":"x"}`))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = ""
			w := httptest.NewRecorder()
			r.ServeHTTP(w, tc.req)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, seen, "handler must not run")

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, GuardMessage, body["error"])
			assert.Equal(t, "invalid_input", body["code"])
			assert.NotEmpty(t, body["request_id"])
		})
	}
}

func TestInputGuard_PassesNonJSONAndMalformedBodies(t *testing.T) {
	var seen string
	r := guardedEngine(GuardOptions{}, &seen)

	for _, body := range []string{"plain text -- not json", `{"broken":`} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/items/a", strings.NewReader(body)))
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasSuffix(seen, body), "body must reach the handler unchanged")
	}
}
