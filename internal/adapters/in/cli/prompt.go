package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// Prompter asks the user for values. The survey implementation is used on a
// terminal; tests script their answers.
type Prompter interface {
	Select(message string, options []string, def string) (string, error)
	Input(message, def, help string) (string, error)
	Confirm(message string, def bool) (bool, error)
}

// SurveyPrompter prompts on the controlling terminal.
type SurveyPrompter struct{}

func (SurveyPrompter) Select(message string, options []string, def string) (string, error) {
	var answer string
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if def != "" {
		prompt.Default = def
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", fmt.Errorf("survey failed: %w", err)
	}
	return answer, nil
}

func (SurveyPrompter) Input(message, def, help string) (string, error) {
	var answer string
	prompt := &survey.Input{
		Message: message,
		Default: def,
		Help:    help,
	}
	if err := survey.AskOne(prompt, &answer, survey.WithValidator(survey.Required)); err != nil {
		return "", fmt.Errorf("survey failed: %w", err)
	}
	return answer, nil
}

func (SurveyPrompter) Confirm(message string, def bool) (bool, error) {
	var answer bool
	prompt := &survey.Confirm{
		Message: message,
		Default: def,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, fmt.Errorf("survey failed: %w", err)
	}
	return answer, nil
}
