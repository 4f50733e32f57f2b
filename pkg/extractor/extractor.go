package extractor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iWorld-y/article_skeptic/pkg/config"
	"github.com/iWorld-y/article_skeptic/pkg/logger"
	"github.com/iWorld-y/article_skeptic/pkg/model"
)

// ErrAllStrategiesFailed 所有提取策略均失败
var ErrAllStrategiesFailed = errors.New("all extraction strategies failed")

// ErrInvalidURL URL 非法或不允许抓取
var ErrInvalidURL = errors.New("invalid or disallowed url")

// Strategy 定义单个正文提取策略
type Strategy interface {
	Name() string
	Extract(ctx context.Context, url string) (*model.ExtractionResult, error)
}

// Chain 按固定优先级依次尝试各提取策略，直到某个策略的输出通过校验
type Chain struct {
	strategies []Strategy
	timeout    time.Duration
}

// NewChain 按配置构建策略链，顺序固定：
// readability -> metadata -> selector -> rawhtml -> headless（可选）
func NewChain(cfg config.ExtractConfig) *Chain {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	strategies := []Strategy{
		newReadabilityStrategy(timeout),
		newMetadataStrategy(cfg.UserAgent),
		newSelectorStrategy(cfg.UserAgent),
		newRawHTMLStrategy(cfg.UserAgent),
	}
	if cfg.EnableHeadless {
		strategies = append(strategies, newHeadlessStrategy(cfg.UserAgent))
	}

	return &Chain{
		strategies: strategies,
		timeout:    timeout,
	}
}

// Extract 依次尝试各策略，返回第一个通过校验的结果。
// 单个策略失败或被校验拒绝均不阻断后续策略。
func (c *Chain) Extract(ctx context.Context, url string) (*model.ExtractionResult, error) {
	if !isAllowedURL(url) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, url)
	}

	var lastErr error
	for _, s := range c.strategies {
		sctx, cancel := context.WithTimeout(ctx, c.timeout)
		result, err := s.Extract(sctx, url)
		cancel()

		if err != nil {
			logger.Log.Warnf("策略 [%s] 提取失败 [%s]: %v", s.Name(), url, err)
			lastErr = err
			continue
		}
		if result == nil || result.Text == "" {
			logger.Log.Warnf("策略 [%s] 未提取到内容 [%s]", s.Name(), url)
			continue
		}

		ok, reason := Validate(result.Text)
		if !ok {
			logger.Log.Warnf("策略 [%s] 的结果未通过校验 [%s]: %s", s.Name(), url, reason)
			continue
		}

		result.URL = url
		result.Method = s.Name()
		result.Success = true
		result.Text = CleanText(result.Text)
		logger.Log.Infof("策略 [%s] 提取成功 [%s]: %d 字节", s.Name(), url, len(result.Text))
		return result, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: last error: %v", ErrAllStrategiesFailed, lastErr)
	}
	return nil, ErrAllStrategiesFailed
}
