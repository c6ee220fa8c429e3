// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/jsonschema2md

// jsonschema2md converts JSON Schema documents to markdown.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/woozymasta/jsonschema2md"
	"github.com/woozymasta/jsonschema2md/internal/batch"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/jsonschema2md"
	_buildTime string
)

// cliOptions describes jsonschema2md CLI flags and subcommands.
type cliOptions struct {
	LogLevel string `long:"log-level" description:"Diagnostics log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"warn"`

	Version versionCommand `command:"version" description:"Print version information"`
	Render  renderCommand  `command:"render" description:"Convert JSON Schema to markdown"`
	Batch   batchCommand   `command:"batch" description:"Render schemas listed in YAML job file"`
}

// renderFlags groups markdown rendering flags.
type renderFlags struct {
	ExamplesAsYAML       bool   `short:"y" long:"examples-as-yaml" description:"Render examples section as YAML instead of JSON"`
	OmitTopLevelMetadata bool   `short:"m" long:"omit-top-level-metadata" description:"Skip title and description header"`
	Token                string `short:"t" long:"token" description:"Replace lines between <!-- TOKEN start --> and <!-- TOKEN end --> in output file"`
}

// renderCommand converts one schema to markdown.
type renderCommand struct {
	runner *cliRunner
	Args   struct {
		Input  string `positional-arg-name:"input" description:"Input schema file path, JSON or YAML (optional; stdin when omitted or -)"`
		Output string `positional-arg-name:"output" description:"Output markdown file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	RenderFlags renderFlags `group:"Markdown Render"`
}

// Execute runs render subcommand.
func (command *renderCommand) Execute(_ []string) error {
	return command.runner.runRender(command.RenderFlags, command.Args.Input, command.Args.Output)
}

// batchCommand renders jobs from YAML config.
type batchCommand struct {
	runner *cliRunner
	Args   struct {
		Config string `positional-arg-name:"config" description:"Batch job file path" required:"yes"`
	} `positional-args:"yes"`

	Watch bool `short:"w" long:"watch" description:"Re-render jobs when their schema files change"`
}

// Execute runs batch subcommand.
func (command *batchCommand) Execute(_ []string) error {
	return command.runner.runBatch(command.Args.Config, command.Watch)
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	printVersionInfo(command.runner.stdout)
	return nil
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	logger      *logrus.Logger
	programName string
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runWithIO(args, os.Stdin, stdout, stderr)
}

// runWithIO executes CLI logic with custom stdin, for tests.
func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "jsonschema2md"
	}

	programName = filepath.Base(programName)
	runner := cliRunner{
		programName: programName,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		logger:      setupLogger(stderr, "warn"),
	}

	return runner.run(args)
}

// setupLogger returns text logger writing to output at level.
func setupLogger(output io.Writer, logLevel string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(output)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)

	return logger
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// runRender renders one schema and writes result to stdout, file or marker region.
func (runner *cliRunner) runRender(renderFlags renderFlags, inputPath, outputPath string) error {
	schema, err := runner.readSchemaInput(inputPath)
	if err != nil {
		return err
	}

	parser := jsonschema2md.NewParser(jsonschema2md.Options{
		ExamplesAsYAML:       renderFlags.ExamplesAsYAML,
		OmitTopLevelMetadata: renderFlags.OmitTopLevelMetadata,
	})

	lines, err := parser.ParseSchema(schema)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	outputPath = strings.TrimSpace(outputPath)
	token := strings.TrimSpace(renderFlags.Token)

	switch {
	case token != "" && outputPath == "":
		return &flags.Error{Type: flags.ErrRequired, Message: "--token requires output file argument"}

	case token != "":
		if err := jsonschema2md.WriteLinesBetweenToken(outputPath, lines, token); err != nil {
			return err
		}

		runner.logger.WithFields(logrus.Fields{"output": outputPath, "token": token}).Info("updated marker region")
		return nil

	case outputPath == "":
		if _, err := io.WriteString(runner.stdout, strings.Join(lines, "")); err != nil {
			return fmt.Errorf("write markdown to stdout: %w", err)
		}

		return nil

	default:
		if err := jsonschema2md.WriteFile(outputPath, []byte(strings.Join(lines, ""))); err != nil {
			return fmt.Errorf("write markdown file %q: %w", outputPath, err)
		}

		runner.logger.WithField("output", outputPath).Info("rendered")
		return nil
	}
}

// runBatch loads job file and renders it once or until interrupted in watch mode.
func (runner *cliRunner) runBatch(configPath string, watch bool) error {
	cfg, err := batch.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	batchRunner := batch.NewRunner(runner.logger)
	if watch {
		return batchRunner.Watch(ctx, cfg)
	}

	return batchRunner.Run(ctx, cfg)
}

// readSchemaInput decodes schema from file path or stdin.
func (runner *cliRunner) readSchemaInput(path string) (*jsonschema2md.Node, error) {
	path = strings.TrimSpace(path)
	if path != "" && path != "-" {
		runner.logger.WithField("input", path).Debug("reading schema")
		return jsonschema2md.ParseFile(path)
	}

	data, err := io.ReadAll(runner.stdin)
	if err != nil {
		return nil, fmt.Errorf("read schema from stdin: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("read schema from stdin: empty input")
	}

	return jsonschema2md.Parse(data, jsonschema2md.FormatAuto)
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Render.runner = runner
	options.Batch.runner = runner
	options.Version.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if level, err := logrus.ParseLevel(options.LogLevel); err == nil {
			runner.logger.SetLevel(level)
		}

		if command == nil {
			return nil
		}

		return command.Execute(args)
	}
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}

	return nil
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"render": strings.TrimSpace(fmt.Sprintf(`
Convert JSON Schema to markdown.
Reads schema (JSON or YAML) from file argument or stdin; writes markdown to file argument or stdout.
With --token the output file must exist and contain marker lines; only lines between them are replaced.

Examples:
> $ %s render schema.json > schema.md
> $ cat schema.yaml | %s render --examples-as-yaml > schema.md
> $ %s render --token config schema.json README.md
`, programName, programName, programName)),
		"batch": strings.TrimSpace(fmt.Sprintf(`
Render every job listed in YAML job file.
Relative paths resolve against the job file directory; ${ENV} references are expanded.
With --watch jobs re-render when their schema files change, until interrupted.

Examples:
> $ %s batch docs.yaml
> $ %s --log-level info batch --watch docs.yaml
`, programName, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

func printVersionInfo(output io.Writer) {
	_, _ = fmt.Fprintf(output, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
}
