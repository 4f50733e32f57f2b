package server

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/article_skeptic/pkg/config"
	"github.com/iWorld-y/article_skeptic/pkg/extractor"
	dm "github.com/iWorld-y/article_skeptic/pkg/model"
)

// Analyzer 服务层依赖的分析能力
type Analyzer interface {
	Analyze(ctx context.Context, url string) (*dm.Report, error)
}

// Service HTTP 服务实现
type Service struct {
	engine  Analyzer
	version string
	log     *log.Helper
}

// NewService 创建 HTTP 服务实例
func NewService(engine Analyzer, version string, logger log.Logger) *Service {
	return &Service{engine: engine, version: version, log: log.NewHelper(logger)}
}

// analyzeRequest POST /analyze 请求体
type analyzeRequest struct {
	URL string `json:"url"`
}

// analyzeResponse POST /analyze 响应体
type analyzeResponse struct {
	Success        bool    `json:"success"`
	MarkdownReport string  `json:"markdown_report,omitempty"`
	ProcessingTime float64 `json:"processing_time,omitempty"`
	URL            string  `json:"url,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// NewHTTPServer 创建 kratos HTTP 服务器并注册路由
func NewHTTPServer(cfg config.ServerConfig, svc *Service, logger log.Logger) *http.Server {
	opts := []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if cfg.Addr != "" {
		opts = append(opts, http.Address(cfg.Addr))
	}
	if cfg.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)
	srv.HandleFunc("/analyze", svc.HandleAnalyze)
	srv.HandleFunc("/report", svc.HandleReport)
	srv.HandleFunc("/healthz", svc.HandleHealth)
	return srv
}

// HandleAnalyze 分析指定 URL 的文章，返回 Markdown 报告的 JSON 包装
func (s *Service) HandleAnalyze(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost {
		writeJSON(w, nethttp.StatusMethodNotAllowed, analyzeResponse{Success: false, Error: "method not allowed"})
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeJSON(w, nethttp.StatusBadRequest, analyzeResponse{Success: false, Error: "missing url"})
		return
	}

	rpt, err := s.engine.Analyze(r.Context(), req.URL)
	if err != nil {
		s.log.Errorf("analyze failed [%s]: %v", req.URL, err)
		writeJSON(w, statusFor(err), analyzeResponse{Success: false, Error: err.Error(), URL: req.URL})
		return
	}

	writeJSON(w, nethttp.StatusOK, analyzeResponse{
		Success:        true,
		MarkdownReport: rpt.Markdown,
		ProcessingTime: rpt.ElapsedSeconds,
		URL:            req.URL,
	})
}

// HandleReport 同一条流水线，直接返回 text/markdown 正文
func (s *Service) HandleReport(w nethttp.ResponseWriter, r *nethttp.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeJSON(w, nethttp.StatusBadRequest, analyzeResponse{Success: false, Error: "missing url parameter"})
		return
	}

	rpt, err := s.engine.Analyze(r.Context(), url)
	if err != nil {
		s.log.Errorf("report failed [%s]: %v", url, err)
		writeJSON(w, statusFor(err), analyzeResponse{Success: false, Error: err.Error(), URL: url})
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(nethttp.StatusOK)
	_, _ = w.Write([]byte(rpt.Markdown))
}

// HandleHealth 健康检查
func (s *Service) HandleHealth(w nethttp.ResponseWriter, _ *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

// statusFor 非法 URL 映射为 400，提取耗尽与远端服务失败统一 500
func statusFor(err error) int {
	if errors.Is(err, extractor.ErrInvalidURL) {
		return nethttp.StatusBadRequest
	}
	return nethttp.StatusInternalServerError
}

func writeJSON(w nethttp.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
