package ssr

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"msgboard/internal/logger"
)

// Handler renders pages in a single pass per request: build the
// request-scoped client, join all page queries under a deadline, serialize
// markup and state into one buffer, send it once. An upstream failure means
// no HTML at all, never a partial document.
type Handler struct {
	apiURL  string
	timeout time.Duration
	tmpl    *template.Template
}

func NewHandler(apiURL string, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Handler{
		apiURL:  apiURL,
		timeout: timeout,
		tmpl:    parseTemplates(),
	}
}

type documentData struct {
	Title  string
	Markup template.HTML
	State  template.JS
}

// Page returns the handler serving one SSR route.
func (h *Handler) Page(p Page) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		client := NewClient(h.apiURL, r)

		results, err := fetchAll(ctx, client, p.Queries)
		if err != nil {
			logger.Error("ssr fetch failed", map[string]any{
				"path":  r.URL.Path,
				"error": err.Error(),
			})
			http.Error(w, "upstream fetch failed", http.StatusBadGateway)
			return
		}

		view, err := p.View(results)
		if err != nil {
			logger.Error("ssr view build failed", map[string]any{
				"path":  r.URL.Path,
				"error": err.Error(),
			})
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}

		var markup bytes.Buffer
		if err := h.tmpl.ExecuteTemplate(&markup, p.Template, view); err != nil {
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}

		state, err := HydrationState(results)
		if err != nil {
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}

		var doc bytes.Buffer
		err = h.tmpl.ExecuteTemplate(&doc, "document", documentData{
			Title:  p.Title,
			Markup: template.HTML(markup.String()),
			State:  template.JS(state),
		})
		if err != nil {
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(doc.Bytes())
	})
}

type fetchResult struct {
	key  string
	data json.RawMessage
	err  error
}

// fetchAll runs every query concurrently and blocks until all finish or the
// deadline hits. One rejection fails the whole join; queries are never
// retried within a pass.
func fetchAll(ctx context.Context, client *Client, queries []PageQuery) (map[string]json.RawMessage, error) {
	ch := make(chan fetchResult, len(queries))
	for _, q := range queries {
		go func(q PageQuery) {
			data, err := client.Query(ctx, q.Query, q.Variables)
			ch <- fetchResult{key: q.Key, data: data, err: err}
		}(q)
	}

	results := make(map[string]json.RawMessage, len(queries))
	var firstErr error
	for range queries {
		res := <-ch
		if res.err != nil && firstErr == nil {
			firstErr = res.err
		}
		results[res.key] = res.data
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
