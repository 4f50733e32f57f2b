package analysis

import (
	"fmt"
	"strings"

	dm "github.com/iWorld-y/article_skeptic/pkg/model"
)

// systemPrompt 固定系统消息：只允许输出 JSON
const systemPrompt = "You are a JSON generator. Output a single JSON object only, with no markdown fences and no commentary."

// analysisSchema 提示词中内嵌的输出结构，字段与 model.AnalysisResult 一一对应
const analysisSchema = `{
	"core_claims": [
		{"text": "a specific factual claim made by the article", "evidence_quality": "strong|moderate|weak|none"}
	],
	"language_tone_summary": "2-4 sentences describing the article's tone, loaded language and persuasive techniques",
	"red_flags": [
		{"description": "a concrete credibility or bias issue found in the text", "severity": "low|medium|high"}
	],
	"verification_questions": ["a specific, actionable question a reader should research to verify the article"],
	"entities": [
		{"name": "entity name", "type": "person|organization|location|event", "note": "how the article frames this entity"}
	],
	"counter_narrative": "how someone with an opposing viewpoint might interpret the same facts, written fairly"
}`

// BuildPrompt 将文章正文与元数据序列化为一次结构化分析请求。
// 同样的输入总是产出同样的提示词。
func BuildPrompt(article *dm.ExtractionResult, maxContentBytes int) (system string, user string) {
	content := article.Text
	if maxContentBytes > 0 && len(content) > maxContentBytes {
		content = content[:maxContentBytes]
	}

	var sb strings.Builder
	sb.WriteString("You are an expert media analyst and fact-checker. Analyze the following news article for bias, claim quality and credibility issues.\n\n")
	sb.WriteString("ARTICLE METADATA:\n")
	fmt.Fprintf(&sb, "- URL: %s\n", valueOr(article.URL, "Unknown"))
	fmt.Fprintf(&sb, "- Title: %s\n", valueOr(article.Title, "Unknown"))
	fmt.Fprintf(&sb, "- Author: %s\n", valueOr(article.Author, "Unknown"))
	fmt.Fprintf(&sb, "- Publication Date: %s\n\n", valueOr(article.PublishedDate, "Unknown"))
	sb.WriteString("ARTICLE CONTENT:\n")
	sb.WriteString(content)
	sb.WriteString("\n\nReturn your analysis strictly in this JSON structure:\n")
	sb.WriteString(analysisSchema)
	sb.WriteString("\n\nGuidelines:\n")
	sb.WriteString("1. Identify 3-5 core factual claims and rate the quality of the evidence the article offers for each.\n")
	sb.WriteString("2. Look for emotional manipulation, loaded terminology and absolute statements when summarizing tone.\n")
	sb.WriteString("3. Flag anonymous sourcing, statistical cherry-picking, false dichotomies and missing context as red flags.\n")
	sb.WriteString("4. Make every verification question specific enough to research directly.\n")
	sb.WriteString("5. Keep the counter-narrative intellectually honest; no strawman arguments.\n")

	return systemPrompt, sb.String()
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
