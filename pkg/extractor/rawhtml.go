package extractor

import (
	"context"
	"strings"

	"github.com/iWorld-y/article_skeptic/pkg/model"
)

// rawHTMLStrategy 裸请求兜底：直接抓取页面并做最基础的标签剥离
type rawHTMLStrategy struct {
	userAgent string
}

func newRawHTMLStrategy(userAgent string) *rawHTMLStrategy {
	return &rawHTMLStrategy{userAgent: userAgent}
}

func (s *rawHTMLStrategy) Name() string { return "rawhtml" }

func (s *rawHTMLStrategy) Extract(ctx context.Context, url string) (*model.ExtractionResult, error) {
	html, err := fetchHTML(ctx, url, s.userAgent)
	if err != nil {
		return nil, err
	}

	return &model.ExtractionResult{
		Text: stripTags(html),
	}, nil
}

// stripTags 去掉 script/style/noscript 后剥离所有标签，压缩空白
func stripTags(html string) string {
	html = removeElement(html, "script")
	html = removeElement(html, "style")
	html = removeElement(html, "noscript")

	var result strings.Builder
	inTag := false
	lastWasSpace := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		case inTag:
		case r == '\n' || r == '\r' || r == '\t' || r == ' ':
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		default:
			result.WriteRune(r)
			lastWasSpace = false
		}
	}
	return strings.TrimSpace(result.String())
}

// removeElement 连同内容一起删掉指定标签
func removeElement(html, tag string) string {
	lower := strings.ToLower(html)
	openTag := "<" + tag
	closeTag := "</" + tag + ">"
	for {
		start := strings.Index(lower, openTag)
		if start == -1 {
			break
		}
		end := strings.Index(lower[start:], closeTag)
		if end == -1 {
			break
		}
		end += start + len(closeTag)
		html = html[:start] + html[end:]
		lower = strings.ToLower(html)
	}
	return html
}
