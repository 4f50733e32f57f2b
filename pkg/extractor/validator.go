package extractor

import (
	"fmt"
	"strings"
)

const (
	// 正文最小字符数
	minContentLength = 500
	// 正文最小词数
	minWordCount = 80
	// 正文最少句子数
	minSentenceCount = 3
	// 标签字符占比超过该值视为未剥离的标记文本
	maxMarkupRatio = 0.05
)

// 非正文页面的特征串，命中即拒绝
var nonArticleIndicators = []string{
	"404 not found",
	"page not found",
	"access denied",
	"login required",
	"subscribe to continue",
	"enable javascript",
	"paywall",
}

// Validate 对提取出的正文做启发式校验，返回是否可用及原因。
// 纯启发式门控，不依赖任何模型。
func Validate(text string) (bool, string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false, "empty content"
	}
	if len(trimmed) < minContentLength {
		return false, fmt.Sprintf("content too short: %d bytes", len(trimmed))
	}

	if words := len(strings.Fields(trimmed)); words < minWordCount {
		return false, fmt.Sprintf("too few words: %d", words)
	}

	// 标签字符过多说明拿到的是未剥离的 HTML
	markup := strings.Count(trimmed, "<") + strings.Count(trimmed, ">")
	if float64(markup)/float64(len(trimmed)) > maxMarkupRatio {
		return false, "content is mostly markup"
	}

	sentences := strings.Count(trimmed, ".") + strings.Count(trimmed, "!") +
		strings.Count(trimmed, "?") + strings.Count(trimmed, "。")
	if sentences < minSentenceCount {
		return false, fmt.Sprintf("too few sentences: %d", sentences)
	}

	lower := strings.ToLower(trimmed)
	for _, indicator := range nonArticleIndicators {
		if strings.Contains(lower, indicator) {
			return false, fmt.Sprintf("non-article indicator found: %s", indicator)
		}
	}

	return true, "ok"
}
