package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"glance-backend/internal/llm"
)

type stubCompleter struct {
	reply string
	err   error
}

func (s stubCompleter) Complete(context.Context, string, string) (string, error) {
	return s.reply, s.err
}

func newTestRouter(completer llm.Completer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(&Service{LLM: completer}).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postAnalyze(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAnalyzeReturnsResponse(t *testing.T) {
	router := newTestRouter(stubCompleter{reply: "Summarized."})

	resp := postAnalyze(router, `{"prompt":"Summarize photosynthesis"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	var body struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Response != "Summarized." {
		t.Errorf("response = %q", body.Response)
	}
}

func TestAnalyzeRejectsEmptyPrompt(t *testing.T) {
	router := newTestRouter(stubCompleter{reply: "x"})

	resp := postAnalyze(router, `{"prompt":"  "}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestAnalyzeMapsQuotaError(t *testing.T) {
	router := newTestRouter(stubCompleter{err: llm.ErrQuotaExceeded})

	resp := postAnalyze(router, `{"prompt":"hello"}`)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.Code)
	}
}
