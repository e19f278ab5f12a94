package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Question struct {
	Question   string `json:"question"`
	Difficulty string `json:"difficulty,omitempty"`
}

// QuestionList is stored as a jsonb column on links, interviews and the
// question bank.
type QuestionList []Question

func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	b, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (q *QuestionList) Scan(src any) error {
	if src == nil {
		*q = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into QuestionList", src)
	}
	if len(data) == 0 {
		*q = nil
		return nil
	}
	return json.Unmarshal(data, q)
}

// Texts returns the question strings only, which is all a candidate ever
// sees.
func (q QuestionList) Texts() []string {
	texts := make([]string, 0, len(q))
	for _, item := range q {
		texts = append(texts, item.Question)
	}
	return texts
}
