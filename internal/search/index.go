// Package search provides a simple, deterministic, concurrency-safe in-memory
// similarity index over the assistant's training documents.
//
//   - No logging in the library (callers decide how/what to log)
//   - Functional options (Option pattern)
//   - Unicode-aware tokenization; Hangul words also contribute character
//     bigrams so that a query word matches the same stem with a particle
//     attached ("공약" against "공약은")
//   - Immutable, read-only index after construction (safe for concurrent use)
//   - Deterministic scoring and sorting (stable order for ties)
//
// Every document is split into facts (paragraphs, flattened table rows, see
// FlattenMarkdown). Scoring uses Jaccard similarity between the query token set
// and each fact's token set: score = |Q ∩ P| / |Q ∪ P|. A document is ranked by
// its best fact and appears at most once in a result list.
package search

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Document is one unit of indexed content.
type Document struct {
	ID    string
	Title string
	Text  string
}

// Result is a ranked document with the fact that matched best.
type Result struct {
	ID      string
	Snippet string
	Score   float64
}

// Index is the minimal interface implemented by all search indices.
type Index interface {
	TopK(query string, k int) []Result
	Len() int
}

// ----------------------------------------------------------------------------
// Options

type Option func(*config)

type config struct {
	minFactRunes int
	stopwords    map[string]struct{}
	maxFacts     int
}

func defaultConfig() config {
	return config{
		minFactRunes: 2,
		stopwords:    nil,
		maxFacts:     0,
	}
}

// WithMinFactRunes drops facts shorter than n runes.
func WithMinFactRunes(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.minFactRunes = n
		}
	}
}

func WithStopwords(words []string) Option {
	return func(c *config) {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				m[w] = struct{}{}
			}
		}
		if len(m) > 0 {
			c.stopwords = m
		}
	}
}

// WithMaxFacts caps the number of indexed facts across all documents.
func WithMaxFacts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxFacts = n
		}
	}
}

// ----------------------------------------------------------------------------
// Implementation

type fact struct {
	docID  string
	text   string
	tokens map[string]struct{}
	tLen   int
}

type index struct {
	cfg   config
	facts []fact
	docs  int
}

// NewIndex builds an Index over docs. The title is indexed together with each
// fact so that a query naming the document's subject still matches.
func NewIndex(docs []Document, opts ...Option) Index {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	idx := &index{cfg: cfg}
	seen := make(map[string]struct{}, len(docs))

outer:
	for _, d := range docs {
		for _, raw := range FlattenMarkdown(d.Text) {
			t := strings.TrimSpace(normalizeWhitespace(raw))
			if t == "" {
				continue
			}
			if cfg.minFactRunes > 0 && utf8.RuneCountInString(t) < cfg.minFactRunes {
				continue
			}
			toks := tokenize(d.Title+" "+t, cfg.stopwords)
			if len(toks) == 0 {
				continue
			}
			idx.facts = append(idx.facts, fact{docID: d.ID, text: t, tokens: toks, tLen: len(toks)})
			if _, ok := seen[d.ID]; !ok {
				seen[d.ID] = struct{}{}
				idx.docs++
			}
			if cfg.maxFacts > 0 && len(idx.facts) >= cfg.maxFacts {
				break outer
			}
		}
	}
	return idx
}

// Len reports how many distinct documents contributed at least one fact.
func (i *index) Len() int { return i.docs }

// TopK returns up to k best-matching documents by Jaccard similarity.
func (i *index) TopK(q string, k int) []Result {
	if len(i.facts) == 0 {
		return nil
	}
	if strings.TrimSpace(q) == "" {
		return nil
	}
	if k <= 0 {
		k = 3
	}
	qTokens := tokenize(q, i.cfg.stopwords)
	if len(qTokens) == 0 {
		return nil
	}
	qLen := len(qTokens)

	type scored struct {
		id       string
		snippet  string
		score    float64
		lenRunes int
	}

	best := make(map[string]scored)
	for _, f := range i.facts {
		over := overlap(qTokens, f.tokens)
		if over == 0 {
			continue
		}
		union := float64(qLen + f.tLen - over)
		if union <= 0 {
			continue
		}
		score := float64(over) / union
		cur := scored{id: f.docID, snippet: f.text, score: score, lenRunes: utf8.RuneCountInString(f.text)}
		if prev, ok := best[f.docID]; !ok || better(cur.score, cur.lenRunes, prev.score, prev.lenRunes) {
			best[f.docID] = cur
		}
	}
	if len(best) == 0 {
		return nil
	}

	buf := make([]scored, 0, len(best))
	for _, s := range best {
		buf = append(buf, s)
	}
	sort.SliceStable(buf, func(a, b int) bool {
		if buf[a].score != buf[b].score {
			return buf[a].score > buf[b].score
		}
		if buf[a].lenRunes != buf[b].lenRunes {
			return buf[a].lenRunes < buf[b].lenRunes
		}
		return buf[a].id < buf[b].id
	})

	if k > len(buf) {
		k = len(buf)
	}
	out := make([]Result, k)
	for j := 0; j < k; j++ {
		out[j] = Result{ID: buf[j].id, Snippet: buf[j].snippet, Score: buf[j].score}
	}
	return out
}

// better prefers a higher score, then a shorter snippet.
func better(score float64, runes int, prevScore float64, prevRunes int) bool {
	if score != prevScore {
		return score > prevScore
	}
	return runes < prevRunes
}

// ----------------------------------------------------------------------------
// Helpers

var wordRE = regexp.MustCompile(`\p{L}+\p{N}*|\p{N}+`)

func tokenize(s string, stop map[string]struct{}) map[string]struct{} {
	s = strings.ToLower(s)
	words := wordRE.FindAllString(s, -1)
	if len(words) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if stop != nil {
			if _, skip := stop[w]; skip {
				continue
			}
		}
		out[w] = struct{}{}
		for _, bg := range hangulBigrams(w) {
			out[bg] = struct{}{}
		}
	}
	return out
}

// hangulBigrams returns the two-rune windows of w when w contains Hangul and
// is longer than two runes.
func hangulBigrams(w string) []string {
	rs := []rune(w)
	if len(rs) <= 2 {
		return nil
	}
	hasHangul := false
	for _, r := range rs {
		if unicode.Is(unicode.Hangul, r) {
			hasHangul = true
			break
		}
	}
	if !hasHangul {
		return nil
	}
	out := make([]string, 0, len(rs)-1)
	for j := 0; j+1 < len(rs); j++ {
		out = append(out, string(rs[j:j+2]))
	}
	return out
}

func overlap(a, b map[string]struct{}) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := 0
	if len(a) > len(b) {
		a, b = b, a
	}
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

func normalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
