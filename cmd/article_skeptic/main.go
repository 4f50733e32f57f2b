package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/iWorld-y/article_skeptic/pkg/config"
	"github.com/iWorld-y/article_skeptic/pkg/engine"
	"github.com/iWorld-y/article_skeptic/pkg/logger"
	"github.com/iWorld-y/article_skeptic/pkg/storage"
)

var (
	flagConf string
	flagURL  string
	flagOut  string
)

func init() {
	flag.StringVar(&flagConf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagURL, "url", "", "article url to analyze")
	flag.StringVar(&flagOut, "out", "", "output file path, default stdout")
}

func main() {
	flag.Parse()

	if flagURL == "" {
		log.Fatal("用法错误: 必须通过 -url 指定待分析的文章链接")
	}

	// 1. 加载配置
	cfg, err := config.LoadConfig(flagConf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}
	if cfg.LLM.APIKey == "" {
		log.Fatal("配置错误: 未设置 llm.api_key")
	}

	// 2. 初始化日志
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}

	ctx := context.Background()

	// 3. 初始化存储（可选）
	var store *storage.Storage
	if cfg.DB.Host != "" {
		store, err = storage.NewStorage(cfg.DB)
		if err != nil {
			logger.Log.Fatalf("初始化数据库失败: %v", err)
		}
		defer store.Close()
	}

	// 4. 构建分析引擎
	eng, err := engine.NewEngine(ctx, cfg, store)
	if err != nil {
		logger.Log.Fatalf("初始化分析引擎失败: %v", err)
	}

	// 5. 执行分析
	rpt, err := eng.Analyze(ctx, flagURL)
	if err != nil {
		logger.Log.Fatalf("分析失败: %v", err)
	}

	// 6. 输出报告
	if flagOut == "" {
		fmt.Print(rpt.Markdown)
		return
	}
	if err := os.WriteFile(flagOut, []byte(rpt.Markdown), 0644); err != nil {
		logger.Log.Fatalf("写入报告文件失败: %v", err)
	}
	logger.Log.Infof("报告已写入 %s (耗时 %.1fs, 提取方式: %s)", flagOut, rpt.ElapsedSeconds, rpt.Method)
}
