package agent

import (
	"os"
	"path/filepath"
)

// defaultPlannerPrompt instructs the model to decompose without executing.
// The step format mirrors the propose_plan tool schema.
const defaultPlannerPrompt = `You are a task planner. Break the user's request into discrete steps and
submit them with the propose_plan tool. Do NOT execute any step yourself and
do NOT answer the user directly.

Available capabilities:
- calculate: arithmetic on two numbers. Arguments: "op" (add, subtract, multiply, divide), "a", "b".
- translate: translate English text. Arguments: "text", "target_language" (defaults to German).
- answer: answer a question directly. Arguments: "question".

Rules:
- Number the steps with "index" starting at 0, in the order they must run.
- When a step needs the result of an earlier step, set "depends_on" to that
  step's index and write the token {{step:N}} in the argument that needs the
  value. depends_on must always be smaller than the step's own index.
- A request with a single task still becomes a one-step plan.

Examples:
- "Add 5 and 3, then translate 'hello' to German" becomes
  step 0: calculate {op: add, a: 5, b: 3}
  step 1: translate {text: hello, target_language: German}
- "What is the capital of France?" becomes
  step 0: answer {question: What is the capital of France?}
- "Multiply 4 and 6, then add 10 to the result" becomes
  step 0: calculate {op: multiply, a: 4, b: 6}
  step 1: calculate {op: add, a: "{{step:0}}", b: 10} with depends_on 0`

// PromptManager resolves prompt templates, preferring files in its directory
// over the built-in defaults so prompts can be tuned without a rebuild.
type PromptManager struct {
	Directory string
}

func NewPromptManager(dir string) *PromptManager {
	return &PromptManager{Directory: dir}
}

// GetPlannerPrompt returns planner.md from the prompts directory if present,
// otherwise the built-in decomposition prompt.
func (pm *PromptManager) GetPlannerPrompt() string {
	return pm.load("planner.md", defaultPlannerPrompt)
}

// GetTranslatorPrompt returns translator.md if present, otherwise "" which
// selects the translator adapter's built-in template.
func (pm *PromptManager) GetTranslatorPrompt() string {
	return pm.load("translator.md", "")
}

func (pm *PromptManager) load(name, fallback string) string {
	if pm.Directory == "" {
		return fallback
	}
	data, err := os.ReadFile(filepath.Join(pm.Directory, name))
	if err != nil || len(data) == 0 {
		return fallback
	}
	return string(data)
}
