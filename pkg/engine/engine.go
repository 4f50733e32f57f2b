package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/iWorld-y/article_skeptic/pkg/analysis"
	"github.com/iWorld-y/article_skeptic/pkg/config"
	"github.com/iWorld-y/article_skeptic/pkg/extractor"
	"github.com/iWorld-y/article_skeptic/pkg/logger"
	dm "github.com/iWorld-y/article_skeptic/pkg/model"
	"github.com/iWorld-y/article_skeptic/pkg/report"
	"github.com/iWorld-y/article_skeptic/pkg/storage"
)

// articleExtractor 正文提取能力
type articleExtractor interface {
	Extract(ctx context.Context, url string) (*dm.ExtractionResult, error)
}

// articleAnalyzer LLM 分析能力
type articleAnalyzer interface {
	Analyze(ctx context.Context, article *dm.ExtractionResult) (*dm.AnalysisResult, error)
}

// reportStore 报告落库能力
type reportStore interface {
	SaveReport(report *dm.Report, analysis *dm.AnalysisResult) error
}

// Engine 核心处理引擎：提取 -> 分析 -> 渲染 -> 可选落库
type Engine struct {
	cfg       *config.Config
	extractor articleExtractor
	analyzer  articleAnalyzer
	store     reportStore
}

// NewEngine 创建引擎实例，store 可为 nil
func NewEngine(ctx context.Context, cfg *config.Config, store *storage.Storage) (*Engine, error) {
	client, err := analysis.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("分析客户端初始化失败: %w", err)
	}

	e := &Engine{
		cfg:       cfg,
		extractor: extractor.NewChain(cfg.Extract),
		analyzer:  client,
	}
	if store != nil {
		e.store = store
	}
	return e, nil
}

// Analyze 执行一次完整的文章分析流水线
func (e *Engine) Analyze(ctx context.Context, url string) (*dm.Report, error) {
	start := time.Now()
	logger.Log.Infof("开始分析文章: %s", url)

	article, err := e.extractor.Extract(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("正文提取失败 [%s]: %w", url, err)
	}
	logger.Log.Infof("正文提取完成 [%s]: 策略=%s, 标题=%q, 耗时=%.2fs",
		url, article.Method, article.Title, time.Since(start).Seconds())

	result, err := e.analyzer.Analyze(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("文章分析失败 [%s]: %w", url, err)
	}
	logger.Log.Infof("LLM 分析完成 [%s]: %d 条断言, %d 个红旗, %d 个验证问题",
		url, len(result.CoreClaims), len(result.RedFlags), len(result.VerificationQuestions))

	markdown := report.Render(article, result)

	rpt := &dm.Report{
		URL:            url,
		Title:          article.Title,
		Markdown:       markdown,
		Method:         article.Method,
		ElapsedSeconds: time.Since(start).Seconds(),
	}

	// 落库失败只记日志，不影响本次请求
	if e.store != nil {
		if err := e.store.SaveReport(rpt, result); err != nil {
			logger.Log.Errorf("保存分析报告失败 [%s]: %v", url, err)
		}
	}

	logger.Log.Infof("分析完成 [%s]: 总耗时=%.2fs", url, rpt.ElapsedSeconds)
	return rpt, nil
}
