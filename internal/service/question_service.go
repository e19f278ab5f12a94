package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/repository"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// QuestionGenerator produces the question list for an interview session. It
// never fails: every error path resolves to a deterministic fallback so a
// candidate can always start.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, topic, position, seniority string) model.QuestionList
}

type QuestionService struct {
	primary  ChatCompleter
	fallback ChatCompleter
	embedder EmbeddingGenerator
	bank     *repository.QuestionSetRepository
	logger   *zap.Logger
	count    int
}

// bankDistanceThreshold is the maximum embedding distance at which a cached
// question set is considered the same topic.
const bankDistanceThreshold = 0.35

func NewQuestionService(primary, fallback ChatCompleter, embedder EmbeddingGenerator,
	bank *repository.QuestionSetRepository, logger *zap.Logger, count int) *QuestionService {
	if count <= 0 {
		count = 5
	}
	return &QuestionService{
		primary:  primary,
		fallback: fallback,
		embedder: embedder,
		bank:     bank,
		logger:   logger,
		count:    count,
	}
}

func (s *QuestionService) GenerateQuestions(ctx context.Context, topic, position, seniority string) model.QuestionList {
	topic = strings.TrimSpace(topic)

	cached, embedding := s.lookupBank(ctx, topic, position, seniority)
	if cached != nil {
		return cached
	}

	prompt := questionPrompt(topic, position, seniority, s.count)

	text, err := s.primary.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("primary question generation failed, trying fallback provider",
			zap.String("topic", topic), zap.Error(err))
		if s.fallback != nil {
			text, err = s.fallback.Complete(ctx, prompt)
		}
	}

	var questions model.QuestionList
	if err == nil {
		questions = parseNumberedQuestions(text, s.count)
	}
	if len(questions) == 0 {
		s.logger.Warn("question generation yielded nothing usable, using static set",
			zap.String("topic", topic))
		questions = StaticQuestions(topic, s.count)
	} else if len(questions) < s.count {
		questions = append(questions, StaticQuestions(topic, s.count-len(questions))...)
	}

	s.storeBank(topic, position, seniority, questions, embedding)
	return questions
}

// lookupBank reuses a cached set for a near-identical topic. Any failure
// falls through to generation.
func (s *QuestionService) lookupBank(ctx context.Context, topic, position, seniority string) (model.QuestionList, []float32) {
	if s.embedder == nil || s.bank == nil {
		return nil, nil
	}
	embedding, err := s.embedder.GenerateEmbedding(ctx, bankKey(topic, position, seniority))
	if err != nil {
		s.logger.Debug("topic embedding failed, skipping question bank", zap.Error(err))
		return nil, nil
	}
	matches, err := s.bank.SearchNearest(pgvector.NewVector(embedding), 1)
	if err != nil || len(matches) == 0 {
		return nil, embedding
	}
	match := matches[0]
	if match.Distance > bankDistanceThreshold || len(match.Questions) != s.count {
		return nil, embedding
	}
	s.logger.Info("reusing cached question set",
		zap.String("topic", topic),
		zap.Float64("distance", match.Distance))
	return match.Questions, embedding
}

func (s *QuestionService) storeBank(topic, position, seniority string, questions model.QuestionList, embedding []float32) {
	if s.bank == nil || embedding == nil {
		return
	}
	set := &model.QuestionSet{
		Topic:     topic,
		Position:  position,
		Seniority: seniority,
		Questions: questions,
		Embedding: pgvector.NewVector(embedding),
	}
	if err := s.bank.Create(set); err != nil {
		s.logger.Debug("failed to store question set", zap.Error(err))
	}
}

func bankKey(topic, position, seniority string) string {
	return fmt.Sprintf("%s | %s | %s", topic, position, seniority)
}

func questionPrompt(topic, position, seniority string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert interviewer. Generate exactly %d interview questions about %s", count, topic)
	if position != "" {
		fmt.Fprintf(&b, " for a %s %s candidate", seniority, position)
	}
	b.WriteString(". Include 1 easy, 2 medium, and 2 hard questions. ")
	b.WriteString("Format your response as a numbered list with only the questions - no introductions, ")
	b.WriteString("no explanations, no extra text. Each question should be on its own line starting ")
	b.WriteString("with the number and a period.")
	return b.String()
}

var numberedLine = regexp.MustCompile(`^\s*\d+[.)]\s*(.+)$`)

// parseNumberedQuestions extracts up to max questions from a numbered-list
// completion. Lines without a leading number are kept as a second pass so a
// model that ignores the format still yields something usable.
func parseNumberedQuestions(text string, max int) model.QuestionList {
	var numbered, plain []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := numberedLine.FindStringSubmatch(line); m != nil {
			numbered = append(numbered, strings.TrimSpace(m[1]))
		} else {
			plain = append(plain, line)
		}
	}

	source := numbered
	if len(source) == 0 {
		source = plain
	}
	if len(source) > max {
		source = source[:max]
	}

	questions := make(model.QuestionList, 0, len(source))
	for i, q := range source {
		questions = append(questions, model.Question{
			Question:   q,
			Difficulty: difficultyForOrdinal(i, max),
		})
	}
	return questions
}

// difficultyForOrdinal mirrors the 1 easy / 2 medium / 2 hard prompt shape.
func difficultyForOrdinal(i, total int) string {
	if total != 5 {
		return ""
	}
	switch {
	case i == 0:
		return "easy"
	case i <= 2:
		return "medium"
	default:
		return "hard"
	}
}

// StaticQuestions is the deterministic last-resort set derived from the
// topic string alone.
func StaticQuestions(topic string, n int) model.QuestionList {
	templates := []string{
		"Explain the core concepts of %s and where you have applied them.",
		"Describe a challenging problem you solved using %s and how you approached it.",
		"How would you explain %s to someone unfamiliar with the subject?",
		"What are common pitfalls when working with %s and how do you avoid them?",
		"How do you keep your knowledge of %s up to date, and what recent development stands out to you?",
	}
	questions := make(model.QuestionList, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, model.Question{
			Question:   fmt.Sprintf(templates[i%len(templates)], topic),
			Difficulty: difficultyForOrdinal(i, n),
		})
	}
	return questions
}
