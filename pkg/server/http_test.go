package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/article_skeptic/pkg/extractor"
	dm "github.com/iWorld-y/article_skeptic/pkg/model"
)

// fakeEngine 模拟分析引擎
type fakeEngine struct {
	report *dm.Report
	err    error
}

func (f *fakeEngine) Analyze(_ context.Context, url string) (*dm.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	r := *f.report
	r.URL = url
	return &r, nil
}

func newTestService(engine Analyzer) *Service {
	return NewService(engine, "test", log.NewStdLogger(io.Discard))
}

func sampleReport() *dm.Report {
	return &dm.Report{
		Title:          "Council Approves Budget",
		Markdown:       "# Critical Analysis Report\n\ncontent\n",
		Method:         "readability",
		ElapsedSeconds: 1.5,
	}
}

func TestHandleAnalyze(t *testing.T) {
	svc := newTestService(&fakeEngine{report: sampleReport()})

	body := strings.NewReader(`{"url": "https://example.com/story"}`)
	req := httptest.NewRequest(nethttp.MethodPost, "/analyze", body)
	rec := httptest.NewRecorder()
	svc.HandleAnalyze(rec, req)

	if rec.Code != nethttp.StatusOK {
		t.Fatalf("HandleAnalyze() status = %d, want 200", rec.Code)
	}
	var resp struct {
		Success        bool    `json:"success"`
		MarkdownReport string  `json:"markdown_report"`
		ProcessingTime float64 `json:"processing_time"`
		URL            string  `json:"url"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Errorf("HandleAnalyze() success = false")
	}
	if !strings.Contains(resp.MarkdownReport, "# Critical Analysis Report") {
		t.Errorf("HandleAnalyze() markdown = %q", resp.MarkdownReport)
	}
	if resp.URL != "https://example.com/story" {
		t.Errorf("HandleAnalyze() url = %q", resp.URL)
	}
	if resp.ProcessingTime != 1.5 {
		t.Errorf("HandleAnalyze() processing_time = %v, want 1.5", resp.ProcessingTime)
	}
}

func TestHandleAnalyzeMissingURL(t *testing.T) {
	svc := newTestService(&fakeEngine{report: sampleReport()})

	for _, body := range []string{`{}`, `{"url": ""}`, `not json`} {
		req := httptest.NewRequest(nethttp.MethodPost, "/analyze", strings.NewReader(body))
		rec := httptest.NewRecorder()
		svc.HandleAnalyze(rec, req)

		if rec.Code != nethttp.StatusBadRequest {
			t.Errorf("HandleAnalyze(%q) status = %d, want 400", body, rec.Code)
		}
	}
}

func TestHandleAnalyzeMethodNotAllowed(t *testing.T) {
	svc := newTestService(&fakeEngine{report: sampleReport()})

	req := httptest.NewRequest(nethttp.MethodGet, "/analyze", nil)
	rec := httptest.NewRecorder()
	svc.HandleAnalyze(rec, req)

	if rec.Code != nethttp.StatusMethodNotAllowed {
		t.Errorf("HandleAnalyze(GET) status = %d, want 405", rec.Code)
	}
}

func TestHandleAnalyzeFailure(t *testing.T) {
	svc := newTestService(&fakeEngine{err: fmt.Errorf("extract: %w", extractor.ErrAllStrategiesFailed)})

	body := strings.NewReader(`{"url": "https://example.com/broken"}`)
	req := httptest.NewRequest(nethttp.MethodPost, "/analyze", body)
	rec := httptest.NewRecorder()
	svc.HandleAnalyze(rec, req)

	if rec.Code != nethttp.StatusInternalServerError {
		t.Fatalf("HandleAnalyze() status = %d, want 500", rec.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("HandleAnalyze() failure body = %+v", resp)
	}
}

func TestHandleAnalyzeInvalidURLStatus(t *testing.T) {
	svc := newTestService(&fakeEngine{err: fmt.Errorf("extract: %w", extractor.ErrInvalidURL)})

	body := strings.NewReader(`{"url": "http://localhost/x"}`)
	req := httptest.NewRequest(nethttp.MethodPost, "/analyze", body)
	rec := httptest.NewRecorder()
	svc.HandleAnalyze(rec, req)

	if rec.Code != nethttp.StatusBadRequest {
		t.Errorf("HandleAnalyze() status = %d, want 400 for invalid url", rec.Code)
	}
}

func TestHandleReport(t *testing.T) {
	svc := newTestService(&fakeEngine{report: sampleReport()})

	req := httptest.NewRequest(nethttp.MethodGet, "/report?url=https%3A%2F%2Fexample.com%2Fstory", nil)
	rec := httptest.NewRecorder()
	svc.HandleReport(rec, req)

	if rec.Code != nethttp.StatusOK {
		t.Fatalf("HandleReport() status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("HandleReport() content-type = %q, want text/markdown", ct)
	}
	if !strings.Contains(rec.Body.String(), "# Critical Analysis Report") {
		t.Errorf("HandleReport() body = %q", rec.Body.String())
	}
}

func TestHandleReportMissingURL(t *testing.T) {
	svc := newTestService(&fakeEngine{report: sampleReport()})

	req := httptest.NewRequest(nethttp.MethodGet, "/report", nil)
	rec := httptest.NewRecorder()
	svc.HandleReport(rec, req)

	if rec.Code != nethttp.StatusBadRequest {
		t.Errorf("HandleReport() status = %d, want 400", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	svc := newTestService(&fakeEngine{report: sampleReport()})

	req := httptest.NewRequest(nethttp.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	svc.HandleHealth(rec, req)

	if rec.Code != nethttp.StatusOK {
		t.Fatalf("HandleHealth() status = %d, want 200", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("HandleHealth() status field = %q, want ok", resp["status"])
	}
}
