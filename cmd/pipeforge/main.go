package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pipeforge/core/internal/builtinsteps"
	"github.com/pipeforge/core/internal/config"
	"github.com/pipeforge/core/internal/environment"
	"github.com/pipeforge/core/internal/eventbus"
	"github.com/pipeforge/core/internal/launcher"
	"github.com/pipeforge/core/internal/locator"
	"github.com/pipeforge/core/internal/logging"
	"github.com/pipeforge/core/internal/metrics"
	"github.com/pipeforge/core/internal/pipelinedoc"
	"github.com/pipeforge/core/internal/ports"
	"github.com/pipeforge/core/internal/registry"
	"github.com/pipeforge/core/internal/resource"
	"github.com/pipeforge/core/internal/runtime"
	"github.com/pipeforge/core/internal/scm"
	"github.com/pipeforge/core/internal/secrets"
	"github.com/pipeforge/core/internal/validation"
)

// AppContext bundles every adapter the CLI commands need, wired once in
// main and threaded through the command tree (grounded on cmd/streamy's
// own AppContext/main.go dependency-construction pattern).
type AppContext struct {
	Logger    ports.Logger
	Events    *eventbus.Bus
	Registry  *registry.Registry
	Locator   *locator.Locator
	Secrets   *secrets.Manager
	Env       *environment.Manager
	Retriever *scm.Retriever
	Metrics   *metrics.Collector
	Launcher  *launcher.Launcher
	EngineCfg *config.EngineConfig
}

func main() {
	core := logging.NewCore(0)

	correlationID := ports.GenerateCorrelationID()
	ctx := ports.WithCorrelationID(context.Background(), correlationID)

	rootCmd := newRootCmd(core)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildApp constructs every adapter for one invocation, loading engine
// tuning from configPath (empty uses built-in defaults) and wiring logging
// at the requested verbosity.
func buildApp(core *logging.Core, configPath string, verbose bool) (*AppContext, error) {
	level := "info"
	if verbose {
		level = "debug"
	}
	consumer, err := logging.NewCharmConsumer(os.Stderr, level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	core.AddConsumer(consumer)
	appLogger := core.GetLogger("pipeforge")

	engineCfg := &config.EngineConfig{Workspace: config.WorkspaceConfig{Root: "."}}
	if configPath != "" {
		loaded, err := config.ParseConfig(configPath)
		if err != nil {
			return nil, err
		}
		engineCfg = loaded
	}

	bus := eventbus.New(appLogger.With("component", "event_bus"))
	collector := metrics.New(prometheus.DefaultRegisterer)
	env := environment.New(nil)
	secretMgr := secrets.NewManager(env)
	loc := locator.New()
	locator.Register[ports.Logger](loc, appLogger, "")
	locator.Register[ports.EventPublisher](loc, bus, "")
	locator.Register[ports.EnvironmentManager](loc, env, "")

	reg := registry.New(nil)

	interval := engineCfg.Resource.SampleInterval.Duration
	threshold := engineCfg.Resource.CPUThresholdPct / 100
	monitor := resource.NewMonitor(bus, collector, interval, threshold)

	rt := runtime.New(bus, monitor, appLogger.With("component", "runtime"), validation.New())

	retriever := scm.New(retrieverBaseDir(engineCfg), 30*time.Second)

	if err := reg.RegisterAll([]ports.Step{
		builtinsteps.ShellStep{},
		builtinsteps.ScmCheckoutStep{Retriever: retriever},
	}); err != nil {
		return nil, fmt.Errorf("register built-in steps: %w", err)
	}

	evaluator := pipelinedoc.NewEvaluator()
	convert := pipelinedoc.Converter(reg)

	lch := launcher.New(evaluator, convert, rt, appLogger.With("component", "launcher"), nil, nil)

	return &AppContext{
		Logger:    appLogger,
		Events:    bus,
		Registry:  reg,
		Locator:   loc,
		Secrets:   secretMgr,
		Env:       env,
		Retriever: retriever,
		Metrics:   collector,
		Launcher:  lch,
		EngineCfg: engineCfg,
	}, nil
}

func retrieverBaseDir(cfg *config.EngineConfig) string {
	if cfg != nil && cfg.Workspace.Root != "" {
		return cfg.Workspace.Root + "/.pipeforge/sources"
	}
	return ".pipeforge/sources"
}
