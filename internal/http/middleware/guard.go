// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements InputGuard, which sanitizes and screens every string a
// client sends (JSON body, query string and path parameters) before it reaches
// a handler.
//
// Two passes are applied to each string:
//  1. Sanitize: NFC-normalize, strip <script> blocks, "javascript:" URIs and
//     inline event-handler attributes (onclick= ...), then trim.
//  2. Screen: reject the request when the value exceeds MaxFieldLen runes or
//     matches an SQL keyword, SQL comment or tautology pattern. Screening runs
//     on a width-folded copy so full-width look-alikes are caught too.
//
// Rejections are a generic 400; the response never reveals which pattern
// matched. Bodies that are not JSON objects or arrays pass through untouched.
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// DefaultMaxFieldLen is the per-string limit when GuardOptions leaves it unset.
const DefaultMaxFieldLen = 2000

// GuardMessage is the error text returned for every rejected input.
const GuardMessage = "Input validation failed"

var (
	scriptTagRE    = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	jsURIRE        = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRE = regexp.MustCompile(`(?i)\bon\w+\s*=`)

	sqlKeywordRE   = regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|DROP|CREATE|ALTER|EXEC|UNION|SCRIPT)\b`)
	sqlCommentRE   = regexp.MustCompile(`--|/\*|\*/`)
	sqlTautologyRE = regexp.MustCompile(`(?i)\b(OR|AND)\b\s+\d+\s*=\s*\d+`)
)

var guardRejections = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "input_guard_rejections_total",
		Help: "Requests rejected by the input guard, by reason.",
	},
	[]string{"reason"},
)

func init() {
	prometheus.MustRegister(guardRejections)
}

// GuardOptions configures InputGuard.
type GuardOptions struct {
	// MaxFieldLen caps every string value in runes. Values <= 0 default to 2000.
	MaxFieldLen int
}

// Sanitize strips script blocks, javascript: URIs and inline event handlers
// from s and trims surrounding whitespace.
func Sanitize(s string) string {
	s = norm.NFC.String(s)
	s = scriptTagRE.ReplaceAllString(s, "")
	s = jsURIRE.ReplaceAllString(s, "")
	s = eventHandlerRE.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// screen returns the rejection reason for s, or "" when s is acceptable.
func screen(s string, maxLen int) string {
	if utf8.RuneCountInString(s) > maxLen {
		return "too_long"
	}
	folded := width.Fold.String(s)
	switch {
	case sqlKeywordRE.MatchString(folded):
		return "sql_keyword"
	case sqlCommentRE.MatchString(folded):
		return "sql_comment"
	case sqlTautologyRE.MatchString(folded):
		return "sql_tautology"
	}
	return ""
}

// InputGuard returns a Gin middleware that sanitizes query values, path
// parameters and JSON bodies in place and rejects suspicious input with:
//
//	HTTP/1.1 400 Bad Request
//	{ "success": false, "error": "Input validation failed", "code": "invalid_input", "request_id": "..." }
//
// JSON keys are screened as well as values. Numbers keep their exact textual
// form and HTML characters are not re-escaped when the body is rewritten.
func InputGuard(opts GuardOptions) gin.HandlerFunc {
	maxLen := opts.MaxFieldLen
	if maxLen <= 0 {
		maxLen = DefaultMaxFieldLen
	}

	return func(c *gin.Context) {
		g := guardPass{maxLen: maxLen}

		if raw := c.Request.URL.RawQuery; raw != "" {
			q := c.Request.URL.Query()
			clean := make(url.Values, len(q))
			for k, vv := range q {
				ck := g.str(k)
				for _, v := range vv {
					clean.Add(ck, g.str(v))
				}
			}
			c.Request.URL.RawQuery = clean.Encode()
		}

		for i := range c.Params {
			c.Params[i].Value = g.str(c.Params[i].Value)
		}

		if g.reason == "" && c.Request.Body != nil && c.Request.Body != http.NoBody {
			if err := g.body(c.Request); err != nil {
				LoggerFrom(c).Warn().Err(err).Msg("input guard could not read body")
				g.reason = "unreadable_body"
			}
		}

		if g.reason != "" {
			guardRejections.WithLabelValues(g.reason).Inc()
			LoggerFrom(c).Warn().Str("reason", g.reason).Msg("input rejected")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success":    false,
				"error":      GuardMessage,
				"code":       "invalid_input",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}

// guardPass carries the state of one request inspection. The first rejection
// reason wins.
type guardPass struct {
	maxLen int
	reason string
}

func (g *guardPass) str(s string) string {
	s = Sanitize(s)
	if g.reason == "" {
		g.reason = screen(s, g.maxLen)
	}
	return s
}

func (g *guardPass) walk(v any) any {
	switch t := v.(type) {
	case string:
		return g.str(t)
	case []any:
		for i := range t {
			t[i] = g.walk(t[i])
		}
		return t
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[g.str(k)] = g.walk(vv)
		}
		return out
	default:
		return v
	}
}

// body rewrites a JSON object or array body with sanitized strings. Other
// payloads are restored unchanged so the handler sees the original bytes.
func (g *guardPass) body(r *http.Request) error {
	raw, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	if err != nil {
		return err
	}
	restore := func(b []byte) {
		r.Body = io.NopCloser(bytes.NewReader(b))
		r.ContentLength = int64(len(b))
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		restore(raw)
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		// Malformed JSON is left for the handler's binder to report.
		restore(raw)
		return nil
	}
	doc = g.walk(doc)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	restore(bytes.TrimRight(buf.Bytes(), "\n"))
	return nil
}
