package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	dm "github.com/iWorld-y/article_skeptic/pkg/model"
)

// ParseResponse 将 LLM 的回复解析为 AnalysisResult。
// 先去掉代码块围栏直接反序列化；失败则截取最外层大括号窗口，
// 再逐字段做尽力而为的解析，单个字段坏掉不拖垮整体。
func ParseResponse(content string) (*dm.AnalysisResult, error) {
	clean := strings.TrimSpace(content)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var result dm.AnalysisResult
	if err := json.Unmarshal([]byte(clean), &result); err == nil {
		normalize(&result)
		return &result, nil
	}

	// 回复里夹杂了别的文本，截取首个 { 到末尾 } 的窗口再试
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in response: %.120s", clean)
	}
	window := clean[start : end+1]

	if err := json.Unmarshal([]byte(window), &result); err == nil {
		normalize(&result)
		return &result, nil
	}

	// 逐字段解析：字段级的类型错误只丢弃该字段
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(window), &fields); err != nil {
		return nil, fmt.Errorf("unparsable response: %w", err)
	}

	partial := &dm.AnalysisResult{}
	if raw, ok := fields["core_claims"]; ok {
		_ = json.Unmarshal(raw, &partial.CoreClaims)
	}
	if raw, ok := fields["language_tone_summary"]; ok {
		_ = json.Unmarshal(raw, &partial.LanguageTone)
	}
	if raw, ok := fields["red_flags"]; ok {
		_ = json.Unmarshal(raw, &partial.RedFlags)
	}
	if raw, ok := fields["verification_questions"]; ok {
		_ = json.Unmarshal(raw, &partial.VerificationQuestions)
	}
	if raw, ok := fields["entities"]; ok {
		_ = json.Unmarshal(raw, &partial.Entities)
	}
	if raw, ok := fields["counter_narrative"]; ok {
		_ = json.Unmarshal(raw, &partial.CounterNarrative)
	}
	normalize(partial)
	return partial, nil
}

// normalize 统一枚举值大小写；未知取值原样保留
func normalize(result *dm.AnalysisResult) {
	for i := range result.CoreClaims {
		result.CoreClaims[i].EvidenceQuality = strings.ToLower(strings.TrimSpace(result.CoreClaims[i].EvidenceQuality))
		if result.CoreClaims[i].EvidenceQuality == "" {
			result.CoreClaims[i].EvidenceQuality = dm.EvidenceNone
		}
	}
	for i := range result.RedFlags {
		result.RedFlags[i].Severity = strings.ToLower(strings.TrimSpace(result.RedFlags[i].Severity))
	}
}
