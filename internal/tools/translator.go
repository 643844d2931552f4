package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// defaultTranslatorPrompt is the template sent to the model per translation.
// %[1]s is the target language, %[2]s the text.
const defaultTranslatorPrompt = `Translate the following English text to %[1]s.
Provide only the %[1]s translation, nothing else.

English: "%[2]s"
%[1]s:`

var supportedLanguages = []string{
	"German", "Japanese", "Spanish", "French", "Italian",
	"Portuguese", "Russian", "Chinese", "Korean", "Arabic",
}

// TranslatorTool is the model-backed translation capability.
type TranslatorTool struct {
	Model  llms.Model
	Prompt string
}

// NewTranslatorTool wires a translator against the given model. An empty
// prompt selects the built-in template.
func NewTranslatorTool(model llms.Model, prompt string) *TranslatorTool {
	if prompt == "" {
		prompt = defaultTranslatorPrompt
	}
	return &TranslatorTool{Model: model, Prompt: prompt}
}

func (t *TranslatorTool) Name() string {
	return "translate"
}

func (t *TranslatorTool) Description() string {
	return "Translate English text to a supported language. Defaults to German when no target is given."
}

func (t *TranslatorTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "The English text to translate.",
			},
			"target_language": map[string]any{
				"type":        "string",
				"description": "The target language, e.g. German or Spanish. Defaults to German.",
			},
		},
		"required": []string{"text"},
	}
}

func (t *TranslatorTool) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Text           string `json:"text"`
		TargetLanguage string `json:"target_language"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", &AdapterError{Capability: t.Name(), Kind: ErrTranslation, Err: fmt.Errorf("invalid input: %v", err)}
	}

	text := strings.Trim(strings.TrimSpace(args.Text), `"'`)
	if text == "" {
		return "", &AdapterError{Capability: t.Name(), Kind: ErrTranslation, Err: errors.New("empty input text")}
	}

	language := strings.TrimSpace(args.TargetLanguage)
	if language == "" {
		language = "German"
	}
	language, ok := canonicalLanguage(language)
	if !ok {
		return "", &AdapterError{Capability: t.Name(), Kind: ErrTranslation, Err: fmt.Errorf("unsupported target language %q", args.TargetLanguage)}
	}

	prompt := fmt.Sprintf(t.Prompt, language, text)
	resp, err := llms.GenerateFromSinglePrompt(ctx, t.Model, prompt)
	if err != nil {
		return "", &AdapterError{Capability: t.Name(), Kind: ErrModel, Err: err}
	}

	translation := strings.Trim(strings.TrimSpace(resp), `"'`)
	if translation == "" {
		return "", &AdapterError{Capability: t.Name(), Kind: ErrModel, Err: errors.New("empty model response")}
	}
	return translation, nil
}

// SupportedLanguages lists the translation targets the adapter accepts.
func SupportedLanguages() []string {
	out := make([]string, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

func canonicalLanguage(name string) (string, bool) {
	for _, l := range supportedLanguages {
		if strings.EqualFold(l, name) {
			return l, true
		}
	}
	return "", false
}
