package extractor

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/iWorld-y/article_skeptic/pkg/model"
)

// 常见新闻站点的正文选择器，按命中率排序
var articleSelectors = []string{
	"article",
	".article-content",
	".post-content",
	".entry-content",
	".story-body",
	".article-body",
	`[data-testid="article-body"]`,
	"#content",
	".content",
}

// 提取前需要清理的干扰元素
var junkSelectors = []string{"script", "style", "nav", "header", "footer", "aside"}

// selectorStrategy 基于 goquery 的手工选择器抓取
type selectorStrategy struct {
	userAgent string
}

func newSelectorStrategy(userAgent string) *selectorStrategy {
	return &selectorStrategy{userAgent: userAgent}
}

func (s *selectorStrategy) Name() string { return "selector" }

func (s *selectorStrategy) Extract(ctx context.Context, url string) (*model.ExtractionResult, error) {
	html, err := fetchHTML(ctx, url, s.userAgent)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	result := &model.ExtractionResult{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	for _, junk := range junkSelectors {
		doc.Find(junk).Remove()
	}

	for _, selector := range articleSelectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		var parts []string
		sel.Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				parts = append(parts, text)
			}
		})
		result.Text = strings.Join(parts, "\n\n")
		break
	}

	// 兜底：取 main 或 body 的全文
	if result.Text == "" {
		main := doc.Find("main")
		if main.Length() == 0 {
			main = doc.Find("body")
		}
		result.Text = strings.TrimSpace(main.Text())
	}

	return result, nil
}
