package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meera/sahay/internal/agent"
	"github.com/meera/sahay/internal/gateway"
	"github.com/meera/sahay/internal/governance"
	"github.com/meera/sahay/internal/observability"
	"github.com/meera/sahay/internal/store"
	"github.com/meera/sahay/internal/tools"
	"github.com/meera/sahay/pkg/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

func main() {
	cfgPath := "config.json"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize LLM (using default enabled provider)
	pName, pCfg := cfg.GetDefaultProvider()
	if pName == "" {
		log.Fatal("No enabled provider found in config")
	}

	var llm llms.Model
	switch pName {
	case "googleai", "gemini":
		llm, err = googleai.New(ctx,
			googleai.WithAPIKey(pCfg.APIKey),
			googleai.WithDefaultModel(pCfg.Model),
		)
	case "openai", "openrouter":
		opts := []openai.Option{
			openai.WithToken(pCfg.APIKey),
			openai.WithModel(pCfg.Model),
		}
		if pCfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(pCfg.BaseURL))
		}
		llm, err = openai.New(opts...)
	default:
		log.Fatalf("Provider %s not yet implemented in main", pName)
	}
	if err != nil {
		log.Fatal(err)
	}

	prompts := agent.NewPromptManager(cfg.App.Prompts)
	logger := observability.NewLogger()

	// Capability adapters
	registry := tools.NewRegistry()
	registry.Register(tools.NewCalculatorTool())
	registry.Register(tools.NewTranslatorTool(llm, prompts.GetTranslatorPrompt()))
	registry.Register(tools.NewAnswerTool(llm))

	dbPath := cfg.Memory.Path
	if dbPath == "" {
		dbPath = "sahay.db"
	}
	interactions, err := store.NewInteractionStore(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer interactions.Close()

	gov := governance.NewDefaultPolicyEngine()
	// Default safety rule: never let an utterance smuggle planner overrides
	// into a capability call.
	_ = gov.DenyArguments(`(?i)ignore (all )?previous instructions`)

	decomposer := agent.NewDecomposer(llm, prompts, logger)
	orchestrator := agent.NewOrchestrator(registry, gov, logger)
	brain := agent.NewPlannerBrain(decomposer, orchestrator, interactions, logger)

	if tgCfg, ok := cfg.GetTelegramConfig(); ok {
		runTelegram(ctx, stop, tgCfg.Token, brain)
		return
	}

	if _, ok := cfg.GetConsoleConfig(); !ok {
		log.Fatal("No gateway enabled in config")
	}

	observability.PrintBanner()
	cg := gateway.NewConsoleGateway(brain)
	go func() {
		if err := cg.Start(); err != nil {
			log.Printf("console gateway error: %v", err)
		}
		stop()
	}()

	<-ctx.Done()
}

// runTelegram starts the bot with the live dashboard: the terminal is split
// into a status area and a scrolling log region.
func runTelegram(ctx context.Context, stop context.CancelFunc, token string, brain agent.Brain) {
	observability.PrintBanner()
	observability.InitializeTerminal()

	// Route all log output through the terminal mutex so it never
	// interrupts the dashboard's cursor save/restore sequence.
	log.SetOutput(observability.NewTermWriter())

	tg, err := gateway.NewTelegramGateway(token, brain)
	if err != nil {
		log.Fatal(err)
	}

	// Live Resource Dashboard (1-second updates)
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				observability.PrintLiveStatus()
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				observability.Heartbeat()
			}
		}
	}()

	go func() {
		if err := tg.Start(); err != nil {
			log.Printf("\033[91m[ FAIL ] GATEWAY CRITICAL ERROR: %v\033[0m", err)
			stop()
		}
	}()

	<-ctx.Done()

	observability.CleanupTerminal()

	// Give a short time for final logs/syncs
	time.Sleep(500 * time.Millisecond)
	log.Println("\033[95m[ EXIT ] CORE DE-INITIALIZED. GOODBYE.\033[0m")
}
