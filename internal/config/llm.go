package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// LLMConfig carries the knobs shared by question generation and response
// analysis rather than anything provider specific.
type LLMConfig struct {
	QuestionCount  int
	RequestTimeout time.Duration
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
)

func LoadLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		count := 5
		if v := os.Getenv("QUESTION_COUNT"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				count = n
			}
		}
		timeout := 120 * time.Second
		if v := os.Getenv("LLM_REQUEST_TIMEOUT"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				timeout = time.Duration(n) * time.Second
			}
		}
		llmConfig = &LLMConfig{
			QuestionCount:  count,
			RequestTimeout: timeout,
		}
	})
	return llmConfig
}
