package extractor

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/iWorld-y/article_skeptic/pkg/logger"
	"github.com/iWorld-y/article_skeptic/pkg/model"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger("error", ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// fakeStrategy 可编程的假策略，记录自己是否被调用
type fakeStrategy struct {
	name   string
	result *model.ExtractionResult
	err    error
	called bool
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Extract(_ context.Context, _ string) (*model.ExtractionResult, error) {
	f.called = true
	return f.result, f.err
}

func validResult(title string) *model.ExtractionResult {
	return &model.ExtractionResult{
		Title: title,
		Text:  goodArticle(),
	}
}

func newTestChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies, timeout: 5 * time.Second}
}

func TestChainFirstStrategyWins(t *testing.T) {
	first := &fakeStrategy{name: "first", result: validResult("Article A")}
	second := &fakeStrategy{name: "second", result: validResult("Article B")}
	chain := newTestChain(first, second)

	got, err := chain.Extract(context.Background(), "https://example.com/news")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got.Method != "first" {
		t.Errorf("Extract() method = %q, want %q", got.Method, "first")
	}
	if got.Title != "Article A" {
		t.Errorf("Extract() title = %q, want %q", got.Title, "Article A")
	}
	if !got.Success {
		t.Errorf("Extract() success = false, want true")
	}
	if got.URL != "https://example.com/news" {
		t.Errorf("Extract() url = %q", got.URL)
	}
	if second.called {
		t.Errorf("second strategy was called after first succeeded")
	}
}

func TestChainFallbackOrder(t *testing.T) {
	failing := &fakeStrategy{name: "failing", err: errors.New("network error")}
	empty := &fakeStrategy{name: "empty", result: &model.ExtractionResult{}}
	rejected := &fakeStrategy{name: "rejected", result: &model.ExtractionResult{Text: "too short"}}
	winner := &fakeStrategy{name: "winner", result: validResult("Finally")}
	chain := newTestChain(failing, empty, rejected, winner)

	got, err := chain.Extract(context.Background(), "https://example.com/article")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got.Method != "winner" {
		t.Errorf("Extract() method = %q, want %q", got.Method, "winner")
	}
	for _, s := range []*fakeStrategy{failing, empty, rejected, winner} {
		if !s.called {
			t.Errorf("strategy %q was never called", s.name)
		}
	}
}

func TestChainAllStrategiesFail(t *testing.T) {
	a := &fakeStrategy{name: "a", err: errors.New("timeout")}
	b := &fakeStrategy{name: "b", err: errors.New("status 403")}
	chain := newTestChain(a, b)

	_, err := chain.Extract(context.Background(), "https://example.com/broken")
	if !errors.Is(err, ErrAllStrategiesFailed) {
		t.Fatalf("Extract() error = %v, want ErrAllStrategiesFailed", err)
	}
	// 错误信息中应保留最后一个策略的失败原因
	if got := err.Error(); !strings.Contains(got, "status 403") {
		t.Errorf("Extract() error = %q, want last strategy error included", got)
	}
}

func TestChainAllRejected(t *testing.T) {
	a := &fakeStrategy{name: "a", result: &model.ExtractionResult{Text: "tiny"}}
	chain := newTestChain(a)

	_, err := chain.Extract(context.Background(), "https://example.com/page")
	if !errors.Is(err, ErrAllStrategiesFailed) {
		t.Fatalf("Extract() error = %v, want ErrAllStrategiesFailed", err)
	}
}

func TestChainInvalidURL(t *testing.T) {
	strategy := &fakeStrategy{name: "never", result: validResult("x")}
	chain := newTestChain(strategy)

	urls := []string{
		"",
		"ftp://example.com/file",
		"http://localhost/admin",
		"http://127.0.0.1:8080/internal",
		"http://192.168.1.1/router",
		"http://169.254.169.254/latest/meta-data",
	}
	for _, url := range urls {
		_, err := chain.Extract(context.Background(), url)
		if !errors.Is(err, ErrInvalidURL) {
			t.Errorf("Extract(%q) error = %v, want ErrInvalidURL", url, err)
		}
	}
	if strategy.called {
		t.Errorf("strategy was called for disallowed url")
	}
}
