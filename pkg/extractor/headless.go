package extractor

import (
	"context"

	"github.com/chromedp/chromedp"

	"github.com/iWorld-y/article_skeptic/pkg/model"
)

// headlessStrategy 无头浏览器兜底策略，处理重 JavaScript 渲染的页面。
// 依赖本机 Chrome/Chromium，默认关闭，需在配置中显式启用。
type headlessStrategy struct {
	userAgent string
}

func newHeadlessStrategy(userAgent string) *headlessStrategy {
	return &headlessStrategy{userAgent: userAgent}
}

func (s *headlessStrategy) Name() string { return "headless" }

func (s *headlessStrategy) Extract(ctx context.Context, url string) (*model.ExtractionResult, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(s.userAgent),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var title, text string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Title(&title),
		chromedp.Text("body", &text, chromedp.ByQuery),
	)
	if err != nil {
		return nil, err
	}

	return &model.ExtractionResult{
		Title: title,
		Text:  text,
	}, nil
}
