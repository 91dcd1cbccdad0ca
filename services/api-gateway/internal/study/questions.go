package study

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var bundled []byte

// Question is one multiple-choice prompt. Answer is the 1-based index of the
// right option.
type Question struct {
	Chapter string   `yaml:"chapter"`
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
	Answer  int      `yaml:"answer"`
}

func (q Question) correct(choice int) bool {
	return choice == q.Answer
}

// ParseQuestions reads a YAML question list.
func ParseQuestions(data []byte) ([]Question, error) {
	var qs []Question
	if err := yaml.Unmarshal(data, &qs); err != nil {
		return nil, err
	}
	for i, q := range qs {
		if q.Answer < 1 || q.Answer > len(q.Options) {
			return nil, fmt.Errorf("question %d: answer %d out of range", i+1, q.Answer)
		}
	}
	return qs, nil
}

func BundledQuestions() ([]Question, error) {
	return ParseQuestions(bundled)
}
