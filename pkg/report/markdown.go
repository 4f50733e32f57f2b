package report

import (
	"fmt"
	"sort"
	"strings"

	dm "github.com/iWorld-y/article_skeptic/pkg/model"
)

// 四个固定章节标题，顺序不可变
const (
	headingClaims    = "### Core Claims"
	headingTone      = "### Language & Tone Analysis"
	headingRedFlags  = "### Potential Red Flags"
	headingQuestions = "### Verification Questions"
)

const disclaimer = "**Disclaimer:** This analysis is generated by AI and should not be considered " +
	"the final word on article credibility. Verify important information through multiple " +
	"independent sources."

var severityRank = map[string]int{
	dm.SeverityHigh:   3,
	dm.SeverityMedium: 2,
	dm.SeverityLow:    1,
}

// Render 将分析结果渲染为固定格式的 Markdown 报告。
// 纯函数：同样的输入总是产出字节一致的输出，缺失字段降级为占位段落，不会失败。
func Render(article *dm.ExtractionResult, analysis *dm.AnalysisResult) string {
	if article == nil {
		article = &dm.ExtractionResult{}
	}
	if analysis == nil {
		analysis = &dm.AnalysisResult{}
	}

	sections := []string{
		renderHeader(article),
		renderClaims(analysis.CoreClaims),
		renderTone(analysis.LanguageTone),
		renderRedFlags(analysis.RedFlags),
		renderQuestions(analysis.VerificationQuestions),
	}

	if len(analysis.Entities) > 0 {
		sections = append(sections, renderEntities(analysis.Entities))
	}
	if strings.TrimSpace(analysis.CounterNarrative) != "" {
		sections = append(sections, renderCounterNarrative(analysis.CounterNarrative))
	}

	sections = append(sections, "---\n\n"+disclaimer)

	return strings.Join(sections, "\n\n") + "\n"
}

func renderHeader(article *dm.ExtractionResult) string {
	var sb strings.Builder
	sb.WriteString("# Critical Analysis Report\n\n")
	fmt.Fprintf(&sb, "**Article:** %s  \n", valueOr(article.Title, "Unknown Title"))
	fmt.Fprintf(&sb, "**URL:** %s  \n", valueOr(article.URL, "Unknown"))
	fmt.Fprintf(&sb, "**Author:** %s  \n", valueOr(article.Author, "Unknown"))
	fmt.Fprintf(&sb, "**Publication Date:** %s  \n\n", valueOr(article.PublishedDate, "Unknown"))
	sb.WriteString("---")
	return sb.String()
}

func renderClaims(claims []dm.Claim) string {
	if len(claims) == 0 {
		return headingClaims + "\n\n*No major factual claims identified.*"
	}

	var sb strings.Builder
	sb.WriteString(headingClaims + "\n")
	for i, claim := range claims {
		fmt.Fprintf(&sb, "\n**%d.** %s\n\n", i+1, claim.Text)
		fmt.Fprintf(&sb, "- **Evidence Quality:** %s\n", titleCase(valueOr(claim.EvidenceQuality, dm.EvidenceNone)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderTone(summary string) string {
	if strings.TrimSpace(summary) == "" {
		return headingTone + "\n\n*No language analysis available.*"
	}
	return headingTone + "\n\n" + strings.TrimSpace(summary)
}

func renderRedFlags(flags []dm.RedFlag) string {
	if len(flags) == 0 {
		return headingRedFlags + "\n\n*No significant red flags identified.*"
	}

	// 按严重程度从高到低排序，未知取值排在最后
	sorted := make([]dm.RedFlag, len(flags))
	copy(sorted, flags)
	sort.SliceStable(sorted, func(i, j int) bool {
		return severityRank[sorted[i].Severity] > severityRank[sorted[j].Severity]
	})

	var sb strings.Builder
	sb.WriteString(headingRedFlags + "\n")
	for _, flag := range sorted {
		fmt.Fprintf(&sb, "\n- **%s:** %s", titleCase(valueOr(flag.Severity, "unrated")), flag.Description)
	}
	return sb.String()
}

func renderQuestions(questions []string) string {
	if len(questions) == 0 {
		return headingQuestions + "\n\n*No specific verification questions generated.*"
	}

	var sb strings.Builder
	sb.WriteString(headingQuestions + "\n")
	for i, question := range questions {
		fmt.Fprintf(&sb, "\n**%d.** %s", i+1, question)
	}
	return sb.String()
}

func renderEntities(entities []dm.Entity) string {
	// 按类型分组，类型名排序保证输出稳定
	groups := make(map[string][]dm.Entity)
	for _, entity := range entities {
		key := valueOr(entity.Type, "other")
		groups[key] = append(groups[key], entity)
	}
	types := make([]string, 0, len(groups))
	for t := range groups {
		types = append(types, t)
	}
	sort.Strings(types)

	var sb strings.Builder
	sb.WriteString("### Key Entities\n")
	for _, t := range types {
		fmt.Fprintf(&sb, "\n**%s:**\n", titleCase(t))
		for _, entity := range groups[t] {
			sb.WriteString("- " + entity.Name)
			if entity.Note != "" {
				sb.WriteString(" (_" + entity.Note + "_)")
			}
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderCounterNarrative(narrative string) string {
	return "### Alternative Perspectives\n\n" + strings.TrimSpace(narrative)
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func titleCase(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
