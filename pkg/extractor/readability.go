package extractor

import (
	"context"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/iWorld-y/article_skeptic/pkg/model"
)

// readabilityStrategy 使用 go-readability 做结构化正文提取，速度最快、结果最干净
type readabilityStrategy struct {
	timeout time.Duration
}

func newReadabilityStrategy(timeout time.Duration) *readabilityStrategy {
	return &readabilityStrategy{timeout: timeout}
}

func (s *readabilityStrategy) Name() string { return "readability" }

func (s *readabilityStrategy) Extract(_ context.Context, url string) (*model.ExtractionResult, error) {
	article, err := readability.FromURL(url, s.timeout)
	if err != nil {
		return nil, err
	}

	result := &model.ExtractionResult{
		Title:  article.Title,
		Author: article.Byline,
		Text:   article.TextContent,
	}
	if article.PublishedTime != nil {
		result.PublishedDate = article.PublishedTime.Format(time.RFC3339)
	}
	return result, nil
}
