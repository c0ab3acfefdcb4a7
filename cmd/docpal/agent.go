package cli

import (
	"fmt"
	"os"

	"github.com/docpal/docpal/agent/ai"
	agentcfg "github.com/docpal/docpal/agent/config"
	"github.com/docpal/docpal/agent/profile"
	"github.com/docpal/docpal/agent/runner"
	"github.com/docpal/docpal/agent/session"
	"github.com/docpal/docpal/agent/tokens"
	"github.com/docpal/docpal/agent/tools"
)

// loadConfig loads the configuration, honoring the --config flag.
func loadConfig() *agentcfg.Config {
	var cfg *agentcfg.Config
	var err error

	if cfgFile != "" {
		cfg, err = agentcfg.LoadFrom(cfgFile)
	} else {
		cfg, err = agentcfg.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureDataDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating data directory: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// buildAgent wires the full assistant: provider, budgeter, operation
// catalog, session store, and the loop itself. The caller owns closing the
// returned store.
func buildAgent(cfg *agentcfg.Config) (*runner.Runner, *session.Store, error) {
	if cfg.Model.APIKey == "" {
		return nil, nil, fmt.Errorf("no API key configured (set GEMINI_API_KEY or model.api_key in config.yaml)")
	}

	provider := ai.NewOpenAIProvider(cfg.Model.APIKey, cfg.Model.BaseURL, cfg.Model.Name)

	budgeter, err := tokens.NewBudgeter()
	if err != nil {
		return nil, nil, err
	}

	docCfg := tools.DocumentConfig{
		MaxInputTokens:   cfg.Limits.MaxInputTokens,
		SummaryMaxTokens: cfg.Limits.SummaryMaxTokens,
		QuizMaxTokens:    cfg.Limits.QuizMaxTokens,
		Timeout:          cfg.Limits.RequestTimeout(),
	}
	profileStore := profile.NewStore(cfg.ProfilePath())

	registry := tools.NewRegistry(
		tools.NewReadProfileOp(profileStore),
		tools.NewUpdateProfileOp(profileStore),
		tools.NewExtractTextOp(),
		tools.NewSummarizeOp(provider, budgeter, docCfg),
		tools.NewQuizOp(provider, budgeter, docCfg),
	)

	store, err := session.New(cfg.DBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session store: %w", err)
	}

	return runner.New(provider, registry, store, cfg.MaxContext), store, nil
}
