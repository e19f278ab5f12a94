package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// AnalysisResult is the scored outcome of a single question/response pair.
type AnalysisResult struct {
	KnowledgeScore     float64
	CommunicationScore float64
	ConfidenceScore    float64
	Feedback           string
}

// ResponseAnalyzer scores one question/response pair. An error means the
// provider itself was unreachable; unusable provider output is absorbed into
// a neutral fallback instead.
type ResponseAnalyzer interface {
	Analyze(ctx context.Context, question, response string) (*AnalysisResult, error)
}

// neutralScore is returned when the LLM replies but its output cannot be
// parsed. It keeps the per-response loop non-fatal without skewing the
// aggregate toward either extreme.
const neutralScore = 70

type AnalyzerService struct {
	primary  ChatCompleter
	fallback ChatCompleter
	logger   *zap.Logger
}

func NewAnalyzerService(primary, fallback ChatCompleter, logger *zap.Logger) *AnalyzerService {
	return &AnalyzerService{primary: primary, fallback: fallback, logger: logger}
}

func (s *AnalyzerService) Analyze(ctx context.Context, question, response string) (*AnalysisResult, error) {
	// Blank answers are scored without burning an LLM call.
	if strings.TrimSpace(response) == "" {
		return &AnalysisResult{
			Feedback: "No answer provided. The candidate did not respond to this question.",
		}, nil
	}

	prompt := analysisPrompt(question, response)

	text, err := s.primary.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("primary analysis failed, trying fallback provider", zap.Error(err))
		if s.fallback == nil {
			return nil, fmt.Errorf("analyze response: %w", err)
		}
		text, err = s.fallback.Complete(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("analyze response: %w", err)
		}
	}

	return parseAnalysis(text, s.logger), nil
}

func analysisPrompt(question, response string) string {
	return fmt.Sprintf(`You are an expert at analyzing interview responses. Analyze the following interview response to the question: %q

Response: %q

Return your answer STRICTLY in JSON format with this schema:
{
  "knowledge_score": <number 0-100, understanding of the topic>,
  "communication_score": <number 0-100, clarity, grammar, tone>,
  "confidence_score": <number 0-100, assurance and problem-solving in the delivery>,
  "strengths": "<what the candidate did well>",
  "improvements": "<what to improve>",
  "recommendations": "<specific suggestions>",
  "summary": "<one-paragraph overall impression>"
}`, question, response)
}

// parseAnalysis never fails: unusable output degrades to the neutral
// fallback so the orchestrator's loop keeps going.
func parseAnalysis(text string, logger *zap.Logger) *AnalysisResult {
	knowledge := gjson.Get(text, "knowledge_score")
	communication := gjson.Get(text, "communication_score")
	confidence := gjson.Get(text, "confidence_score")

	if !knowledge.Exists() || !communication.Exists() || !confidence.Exists() {
		logger.Warn("analysis output not parseable, using neutral fallback")
		return &AnalysisResult{
			KnowledgeScore:     neutralScore,
			CommunicationScore: neutralScore,
			ConfidenceScore:    neutralScore,
			Feedback:           strings.TrimSpace(text),
		}
	}

	var feedback strings.Builder
	if v := gjson.Get(text, "summary").String(); v != "" {
		feedback.WriteString(v)
	}
	if v := gjson.Get(text, "strengths").String(); v != "" {
		feedback.WriteString("\n\nStrengths: " + v)
	}
	if v := gjson.Get(text, "improvements").String(); v != "" {
		feedback.WriteString("\n\nAreas to improve: " + v)
	}
	if v := gjson.Get(text, "recommendations").String(); v != "" {
		feedback.WriteString("\n\nRecommendations: " + v)
	}

	return &AnalysisResult{
		KnowledgeScore:     clampScore(knowledge.Float()),
		CommunicationScore: clampScore(communication.Float()),
		ConfidenceScore:    clampScore(confidence.Float()),
		Feedback:           strings.TrimSpace(feedback.String()),
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
