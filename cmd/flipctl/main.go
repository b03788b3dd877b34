package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"flipctl/internal/adapter/notify"
	"flipctl/internal/adapter/picker"
	"flipctl/internal/adapter/runner"
	"flipctl/internal/domain"
	"flipctl/internal/infra/config"
	"flipctl/internal/infra/logger"
	"flipctl/internal/infra/tracer"
	"flipctl/internal/usecase"
	"flipctl/internal/usecase/eventbus"
)

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "--help", "-h", "help":
		showUsage()
	case "enable", "disable", "check":
		if err := runAction(domain.Action(os.Args[1]), os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[1], err)
			os.Exit(1)
		}
	case "tenants":
		if err := runTenants(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "tenants: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\nRun 'flipctl --help' for usage information.\n", os.Args[1])
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println(`flipctl - toggle feature flags per tenant through your app's runner

USAGE:
    flipctl <COMMAND> [FLAGS] <selection...>

COMMANDS:
    enable      Enable the feature named by the selection for a chosen tenant
    disable     Disable it
    check       Report whether it is enabled for a chosen tenant
    tenants     Print the tenant list fetched from the runner

FLAGS (per command):
    -config path   Configuration file (default "flipctl.yaml")
    -tenant name   Skip the interactive picker and use this tenant
    -cwd dir       Directory to run the app's runner in (default: current)

The selection is free text ("Dark Mode"); it is normalized into the feature
identifier (dark_mode) before any command is built.`)
}

// commonFlags holds the flags shared by every subcommand.
type commonFlags struct {
	configPath string
	tenant     string
	cwd        string
}

func parseFlags(name string, args []string) (*commonFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cf := &commonFlags{}
	fs.StringVar(&cf.configPath, "config", "flipctl.yaml", "configuration file")
	fs.StringVar(&cf.tenant, "tenant", "", "skip the picker and use this tenant")
	fs.StringVar(&cf.cwd, "cwd", "", "directory to run the runner in")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if cf.cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve working directory: %w", err)
		}
		cf.cwd = wd
	}
	return cf, fs.Args(), nil
}

func runAction(action domain.Action, args []string) error {
	cf, rest, err := parseFlags(string(action), args)
	if err != nil {
		return err
	}
	selection := strings.Join(rest, " ")

	cfg, err := config.Load(cf.configPath)
	if err != nil {
		return err
	}

	log, closeLog, err := logger.New(cfg.Logger)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()
	shutdownTracer, err := tracer.Setup(ctx, cfg.Tracer)
	if err != nil {
		return err
	}
	defer shutdownTracer(ctx)

	bus := eventbus.New(log)
	defer bus.Close()
	defer eventbus.LogSink(bus, log)()

	var selector domain.TenantSelector = picker.TUISelector{}
	if cf.tenant != "" {
		selector = picker.StaticSelector{Tenant: cf.tenant}
	}

	flow := usecase.NewFlow(
		cfg,
		runner.New(cfg.Runner.Shell, bus, log),
		selector,
		notify.NewTerminal(os.Stdout),
		bus,
		log,
		cf.cwd,
	)

	// Failures are already reported through the notifier; the error here only
	// drives the exit status.
	if flow.Run(ctx, action, selection) == usecase.OutcomeFailure {
		return fmt.Errorf("failed")
	}
	return nil
}

func runTenants(args []string) error {
	cf, _, err := parseFlags("tenants", args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cf.configPath)
	if err != nil {
		return err
	}

	log, closeLog, err := logger.New(cfg.Logger)
	if err != nil {
		return err
	}
	defer closeLog()

	tenants, err := usecase.ListTenants(context.Background(), cfg,
		runner.New(cfg.Runner.Shell, nil, log), cf.cwd)
	if err != nil {
		return err
	}
	for _, t := range tenants {
		fmt.Println(t)
	}
	return nil
}
