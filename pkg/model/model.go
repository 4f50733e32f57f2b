package model

// ExtractionResult 抓取并提取正文后的文章信息
type ExtractionResult struct {
	URL           string
	Title         string
	Author        string
	PublishedDate string
	Text          string
	Method        string // 成功提取使用的策略名
	Success       bool
}

// EvidenceQuality 证据质量等级
const (
	EvidenceStrong   = "strong"
	EvidenceModerate = "moderate"
	EvidenceWeak     = "weak"
	EvidenceNone     = "none"
)

// Severity 红旗问题严重程度
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Claim 文章中的一条事实性断言
type Claim struct {
	Text            string `json:"text"`
	EvidenceQuality string `json:"evidence_quality"`
}

// RedFlag 检测到的可信度或偏见问题
type RedFlag struct {
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// Entity 文章中的关键实体（人物、组织、地点等）
type Entity struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Note string `json:"note"`
}

// AnalysisResult LLM 分析结果，由 analysis 包解析后产出
type AnalysisResult struct {
	CoreClaims            []Claim   `json:"core_claims"`
	LanguageTone          string    `json:"language_tone_summary"`
	RedFlags              []RedFlag `json:"red_flags"`
	VerificationQuestions []string  `json:"verification_questions"`
	Entities              []Entity  `json:"entities"`
	CounterNarrative      string    `json:"counter_narrative"`
}

// Report 最终的 Markdown 分析报告
type Report struct {
	URL            string
	Title          string
	Markdown       string
	Method         string  // 正文提取策略名
	ElapsedSeconds float64 // 全流程耗时
}
