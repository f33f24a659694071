// Package main is the entry point for the sqlspygen binary.
// It reads a generator configuration and writes the decorator file it describes.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy/generator"
	"github.com/AntonStoeckl/sqlspy-go/sqlspy/signature"
)

const defaultConfigFile = "sqlspygen.yaml"

// errGenerationFailed makes the process exit non-zero after the remaining decorators were written.
var errGenerationFailed = errors.New("some decorators could not be generated")

// cliConfig holds the parsed CLI configuration.
type cliConfig struct {
	Config    string
	Dir       string
	Output    string
	DumpModel bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root command for sqlspygen.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqlspygen",
		Short: "Generate call-tracing decorators for Go interfaces",
		Long: `Reads a sqlspygen.yaml file and writes one decorator type per configured interface.

Usually run through go:generate next to the configuration:

  //go:generate go run github.com/AntonStoeckl/sqlspy-go/cmd/sqlspygen -c sqlspygen.yaml`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringP("config", "c", defaultConfigFile, "Path to the generator configuration (YAML)")
	rootCmd.Flags().String("dir", "", "Directory to resolve packages from (default: current directory)")
	rootCmd.Flags().StringP("output", "o", "", "Output file, overrides the configuration")
	rootCmd.Flags().Bool("dump-model", false, "Print the flattened interface models as JSON instead of generating")

	return rootCmd
}

func parseCLIConfig(cmd *cobra.Command) (cliConfig, error) {
	var cfg cliConfig
	var err error

	if cfg.Config, err = cmd.Flags().GetString("config"); err != nil {
		return cliConfig{}, fmt.Errorf("failed to get config flag: %w", err)
	}

	if cfg.Dir, err = cmd.Flags().GetString("dir"); err != nil {
		return cliConfig{}, fmt.Errorf("failed to get dir flag: %w", err)
	}

	if cfg.Output, err = cmd.Flags().GetString("output"); err != nil {
		return cliConfig{}, fmt.Errorf("failed to get output flag: %w", err)
	}

	if cfg.DumpModel, err = cmd.Flags().GetBool("dump-model"); err != nil {
		return cliConfig{}, fmt.Errorf("failed to get dump-model flag: %w", err)
	}

	return cfg, nil
}

func run(cmd *cobra.Command, _ []string) error {
	cli, err := parseCLIConfig(cmd)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

	cfg, err := generator.LoadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	models, err := signature.Load(cmd.Context(), cli.Dir, cfg.References()...)
	if err != nil {
		return err
	}

	if cli.DumpModel {
		return dumpModels(cmd, models)
	}

	return generate(logger, cli, cfg, models)
}

func generate(logger *slog.Logger, cli cliConfig, cfg generator.Config, models signature.Models) error {
	file, err := generator.GenerateFile(cfg, models)
	reportFailures(logger, file.Failures)

	if err != nil {
		return err
	}

	output := cli.Output
	if output == "" {
		output = filepath.Join(filepath.Dir(cli.Config), cfg.Output)
	}

	if err = os.WriteFile(output, file.Source, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	logger.Info("decorators written", "output", output, "decorators", file.Decorators)

	if len(file.Failures) > 0 {
		return errGenerationFailed
	}

	return nil
}

func reportFailures(logger *slog.Logger, failures map[string]error) {
	names := make([]string, 0, len(failures))
	for name := range failures {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		logger.Error("decorator not generated", "decorator", name, "error", failures[name].Error())
	}
}

type modelDump struct {
	ID      string             `json:"id"`
	Methods []signature.Method `json:"methods"`
}

type dump struct {
	Interfaces map[string]modelDump `json:"interfaces"`
	Failures   map[string]string    `json:"failures,omitempty"`
}

func dumpModels(cmd *cobra.Command, models signature.Models) error {
	out := dump{
		Interfaces: make(map[string]modelDump, len(models.Interfaces)),
		Failures:   make(map[string]string, len(models.Failures)),
	}

	for ref, model := range models.Interfaces {
		out.Interfaces[ref] = modelDump{ID: model.ID, Methods: model.Flatten()}
	}

	for ref, err := range models.Failures {
		out.Failures[ref] = err.Error()
	}

	raw, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))

	return err
}
