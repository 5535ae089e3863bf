// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/certtrust/src/config"
	"github.com/H0llyW00dzZ/certtrust/src/engine"
	"github.com/H0llyW00dzZ/certtrust/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/certtrust/src/logger"
	"github.com/H0llyW00dzZ/certtrust/src/mcp-server/templates"
)

var (
	// OperationPerformed is set once a subcommand starts working on its input.
	OperationPerformed bool
	// OperationPerformedSuccessfully is set when that work completed.
	OperationPerformedSuccessfully bool
)

var (
	// ErrInputFileRequired is returned when a subcommand is called without its input file.
	ErrInputFileRequired = errors.New("input file is required")
	// ErrInvalidSignature is returned by verify when the signature does not match.
	ErrInvalidSignature = errors.New("signature is not valid")
)

// app carries the state shared by all subcommands.
type app struct {
	version    string
	log        logger.Logger
	configFile string
	verbose    bool

	cfg *config.Config
	eng *engine.Engine
}

// Execute runs the certtrust command line with os.Args.
//
// Parameters:
//   - ctx: Cancelling it aborts the running operation
//   - version: Version string shown by --version
//   - log: Logger for diagnostics; it is redirected to stderr
//
// Returns:
//   - error: The failure of the selected subcommand
func Execute(ctx context.Context, version string, log logger.Logger) error {
	OperationPerformed = false
	OperationPerformedSuccessfully = false
	return NewRootCommand(version, log).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Exposed for tests, which drive it
// with SetArgs.
func NewRootCommand(version string, log logger.Logger) *cobra.Command {
	a := &app{version: version, log: log}
	exeName := posix.GetExecutableName()

	rootCmd := &cobra.Command{
		Use:               exeName,
		Short:             "Certificate trust evaluation and document signing",
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "path to configuration file (default: $"+config.EnvConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "print debug output")

	longDesc, examples, err := loadCLIHelp(templates.MagicEmbed, exeName, "--"+rootCmd.PersistentFlags().Lookup("config").Name)
	if err != nil {
		// The template is embedded; failing here is a build defect.
		panic(fmt.Sprintf("failed to process CLI help template: %v", err))
	}
	rootCmd.Long = longDesc
	rootCmd.Example = examples

	rootCmd.AddCommand(
		a.newInspectCommand(),
		a.newValidateCommand(),
		a.newSignCommand(),
		a.newVerifyCommand(),
		a.newServeCommand(),
		a.newMCPCommand(),
	)
	return rootCmd
}

// setup loads configuration, selects the logger, and builds the engine.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if a.verbose {
		cfg.Log.Verbose = true
	}
	a.cfg = cfg

	// Stdout carries command output, and the MCP protocol in mcp mode.
	switch {
	case cfg.Log.Format == config.LogFormatJSON:
		jl := logger.NewJSONLogger(cmd.ErrOrStderr(), false)
		jl.SetDebug(cfg.Log.Verbose)
		a.log = jl
	case a.log == nil:
		cl := logger.NewCLILogger()
		cl.SetOutput(cmd.ErrOrStderr())
		cl.SetVerbose(cfg.Log.Verbose)
		a.log = cl
	default:
		a.log.SetOutput(cmd.ErrOrStderr())
		if v, ok := a.log.(interface{ SetVerbose(bool) }); ok {
			v.SetVerbose(cfg.Log.Verbose)
		}
	}

	a.eng, err = engine.NewBuilder().
		WithConfig(cfg).
		WithLogger(a.log).
		WithVersion(a.version).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}
	return nil
}

// password returns the flag value, falling back to CERTTRUST_PASSWORD.
func password(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(config.EnvPassword)
}

// requireInput accepts exactly one positional input file.
func requireInput(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return ErrInputFileRequired
	case 1:
		return nil
	default:
		return fmt.Errorf("expected one input file, got %d", len(args))
	}
}

// writeOutput writes data to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// withNewline terminates text output for terminals.
func withNewline(b []byte) []byte {
	if len(b) == 0 || b[len(b)-1] != '\n' {
		return append(b, '\n')
	}
	return b
}
