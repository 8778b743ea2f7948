package promptservice

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

type PromptService interface {
	Confirm(message string) (bool, error)
}

type SurveyPrompt struct {
	askOne func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error
}

func NewSurveyPrompt() *SurveyPrompt {
	return &SurveyPrompt{askOne: survey.AskOne}
}

// Confirm defaults to no, so pressing enter never removes anything.
func (s *SurveyPrompt) Confirm(message string) (bool, error) {
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}

	var confirmed bool
	if err := s.askOne(prompt, &confirmed); err != nil {
		return false, fmt.Errorf("confirmation error: %w", err)
	}

	return confirmed, nil
}
