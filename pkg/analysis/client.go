package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/article_skeptic/pkg/config"
	"github.com/iWorld-y/article_skeptic/pkg/logger"
	dm "github.com/iWorld-y/article_skeptic/pkg/model"
)

// ErrRemoteService 远端分析服务不可用、被限流或返回不可解析的内容
var ErrRemoteService = errors.New("remote analysis service error")

// Client 封装对 LLM 分析服务的调用
type Client struct {
	chatModel       model.BaseChatModel
	limiter         *rate.Limiter
	maxContentBytes int
}

// NewClient 创建分析客户端并初始化限流器
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	// Limit 设置为 RPM/60，Burst 设置为 QPS
	limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	limiter := rate.NewLimiter(limit, cfg.Concurrency.QPS)

	return &Client{
		chatModel:       chatModel,
		limiter:         limiter,
		maxContentBytes: cfg.Extract.MaxContentBytes,
	}, nil
}

// Analyze 将文章送入 LLM 并解析结构化分析结果。
// 仅对 429 和不可解析的回复做有限重试，指数退避。
func (c *Client) Analyze(ctx context.Context, article *dm.ExtractionResult) (*dm.AnalysisResult, error) {
	system, user := BuildPrompt(article, c.maxContentBytes)
	messages := []*schema.Message{
		{Role: schema.System, Content: system},
		{Role: schema.User, Content: user},
	}

	const maxRetries = 3
	baseDelay := 2 * time.Second
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRemoteService, err)
		}

		resp, err := c.chatModel.Generate(ctx, messages)
		if err != nil {
			if isRateLimited(err) && i < maxRetries {
				lastErr = err
				logger.Log.Warnf("LLM 请求被限流，第 %d 次重试: %v", i+1, err)
				time.Sleep(baseDelay * time.Duration(1<<i))
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrRemoteService, err)
		}

		result, err := ParseResponse(resp.Content)
		if err != nil {
			lastErr = err
			if i < maxRetries {
				logger.Log.Warnf("LLM 回复解析失败，第 %d 次重试: %v", i+1, err)
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrRemoteService, err)
		}
		return result, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrRemoteService, lastErr)
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}
