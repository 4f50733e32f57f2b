package extractor

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"

	"github.com/iWorld-y/article_skeptic/pkg/model"
)

// metadataStrategy 面向元数据的提取：OpenGraph 标签优先，goquery 兜底，
// 正文取页面段落文本
type metadataStrategy struct {
	userAgent string
}

func newMetadataStrategy(userAgent string) *metadataStrategy {
	return &metadataStrategy{userAgent: userAgent}
}

func (s *metadataStrategy) Name() string { return "metadata" }

func (s *metadataStrategy) Extract(ctx context.Context, url string) (*model.ExtractionResult, error) {
	html, err := fetchHTML(ctx, url, s.userAgent)
	if err != nil {
		return nil, err
	}

	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(strings.NewReader(html)); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	result := &model.ExtractionResult{Title: og.Title}
	if result.Title == "" {
		result.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	result.Author = metaContent(doc, `meta[name="author"]`)
	if result.Author == "" {
		result.Author = metaContent(doc, `meta[property="article:author"]`)
	}

	if og.Article != nil && og.Article.PublishedTime != nil {
		result.PublishedDate = og.Article.PublishedTime.Format(time.RFC3339)
	} else {
		result.PublishedDate = metaContent(doc, `meta[property="article:published_time"]`)
	}

	// 正文：OpenGraph 描述打头，段落文本拼接
	var parts []string
	if og.Description != "" {
		parts = append(parts, og.Description)
	}
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	result.Text = strings.Join(parts, "\n\n")

	return result, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}
