package gemini

import (
	"fmt"
	"strings"
)

// DigestSystemPrompt is the instruction sent to Gemini for digest generation.
const DigestSystemPrompt = `You are a release-notes assistant. Your job is to turn raw repository activity (commits, pull requests, file diffs) into a short human-readable digest.

RULES:
1. Read the activity context below and produce:
   - title: one line, plain language, no trailing period (required)
   - summary: 2-4 sentences describing what changed and where
   - category: MUST be exactly one of: "feature", "bugfix", "refactor", "docs", "chore", "security"
   - why_this_matters: 1-2 sentences on the practical effect for users or developers (can be empty string)
   - perspectives: OPTIONAL array of viewpoints, each with:
     - category: one of "feature", "bugfix", "refactor", "docs", "chore", "security", "ui"
     - title: short heading
     - summary: 1-3 sentences from that viewpoint
     - confidence: integer 0-100
2. Return ONLY a valid JSON object. No markdown, no code blocks, no explanation text.
3. Never invent file names or changes that are not in the context.

EXAMPLE OUTPUT:
{
  "title": "Retry logic added to the upload worker",
  "summary": "The upload worker now retries transient S3 failures with exponential backoff. The retry budget is capped at three attempts and failures are surfaced in the job log.",
  "category": "feature",
  "why_this_matters": "Large uploads no longer fail permanently on a single network blip.",
  "perspectives": [
    {
      "category": "feature",
      "title": "Safer uploads",
      "summary": "Transient failures are absorbed instead of bubbling up to the user.",
      "confidence": 85
    }
  ]
}

Now read the following repository activity and return ONLY the JSON object:`

// PerspectiveSystemPrompt is the instruction for a single-category perspective.
const PerspectiveSystemPrompt = `You are a code-review assistant. Given a digest of repository activity, write ONE focused viewpoint for the requested category.

RULES:
1. Produce a JSON object with:
   - category: echo the requested category exactly
   - title: short heading for this viewpoint
   - summary: 1-3 sentences analysing the change strictly from this angle
   - confidence: integer 0-100, how relevant this angle is to the change
2. Return ONLY the JSON object. No markdown, no code blocks, no explanation.
3. If the category is barely relevant, still answer but use a low confidence.`

// ImpactSystemPrompt is the instruction for risk-oriented impact analysis.
const ImpactSystemPrompt = `You are a release-risk assistant. Given file diffs and commit/PR context, assess the risk of shipping this change.

RULES:
1. Produce a JSON object with:
   - overall_risk: MUST be exactly one of: "low", "medium", "high"
   - confidence: integer 0-100
   - overall_explanation: 1-3 sentences (can be empty string)
   - affected_files: OPTIONAL array of { "filename": string, "risk": "low"|"medium"|"high", "reason": string }
2. Return ONLY the JSON object. No markdown, no code blocks, no explanation text.
3. Base the assessment only on the provided diffs and context.`

// SummarySystemPrompt is the instruction for period summary aggregation.
const SummarySystemPrompt = `You are a changelog assistant. Given a list of digests produced for one repository during one period, write an aggregate summary of the period.

RULES:
1. Produce a JSON object with:
   - headline: one line describing the period
   - accomplishments: array of short strings (most important first)
   - key_features: array of short strings (may be empty)
   - work_breakdown: object mapping category name to item count, e.g. {"feature": 3, "bugfix": 1}
2. Return ONLY the JSON object. No markdown, no code blocks, no explanation text.`

// BuildDigestPrompt builds the full prompt for digest generation.
func BuildDigestPrompt(activityContext string) string {
	return DigestSystemPrompt + "\n\n" + activityContext
}

// BuildPerspectivePrompt builds the full prompt for one perspective category.
func BuildPerspectivePrompt(category, digestTitle, digestSummary string) string {
	var b strings.Builder
	b.WriteString(PerspectiveSystemPrompt)
	b.WriteString("\n\nREQUESTED CATEGORY: ")
	b.WriteString(category)
	b.WriteString("\n\nDIGEST TITLE: ")
	b.WriteString(digestTitle)
	b.WriteString("\nDIGEST SUMMARY: ")
	b.WriteString(digestSummary)
	b.WriteString("\n\nReturn ONLY the JSON object:")
	return b.String()
}

// BuildImpactPrompt builds the full prompt for impact analysis.
func BuildImpactPrompt(diffContext, textContext string) string {
	var b strings.Builder
	b.WriteString(ImpactSystemPrompt)
	if textContext != "" {
		b.WriteString("\n\nCHANGE CONTEXT:\n")
		b.WriteString(textContext)
	}
	b.WriteString("\n\nFILE DIFFS:\n")
	b.WriteString(diffContext)
	b.WriteString("\n\nReturn ONLY the JSON object:")
	return b.String()
}

// BuildSummaryPrompt builds the full prompt for a period summary.
func BuildSummaryPrompt(period string, digestLines []string) string {
	var b strings.Builder
	b.WriteString(SummarySystemPrompt)
	b.WriteString(fmt.Sprintf("\n\nPERIOD: %s\nDIGESTS (%d):\n", period, len(digestLines)))
	for _, line := range digestLines {
		b.WriteString("- ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\nReturn ONLY the JSON object:")
	return b.String()
}

// stripCodeFence removes a ```json ... ``` wrapper when the model ignores the
// no-markdown instruction.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
