// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tyemirov/ai/internal/config"
	"github.com/tyemirov/ai/internal/output"
	"github.com/tyemirov/ai/internal/platform"
	"github.com/tyemirov/ai/internal/prompt"
	"github.com/tyemirov/ai/internal/services/clipboard"
	"github.com/tyemirov/ai/internal/services/ollama"
	"github.com/tyemirov/ai/internal/services/stream"
	"github.com/tyemirov/ai/internal/spinner"
	"github.com/tyemirov/ai/internal/utils"
)

const (
	clipFlagName          = "clip"
	clipFlagShorthand     = "p"
	modelFlagName         = "model"
	modelFlagShorthand    = "m"
	configFlagName        = "config"
	configFlagShorthand   = "c"
	configListFlagName    = "config-list"
	configListShorthand   = "l"
	timeoutFlagName       = "timeout"
	debugFlagName         = "debug"
	versionFlagName       = "version"
	versionTemplate       = "ai version: %s\n"
	promptWordSeparator   = " "
	rootUse               = "ai [flags] <prompt...>"
	rootShortDescription  = "ask a local language model from the terminal"
	rootLongDescription   = `ai sends a prompt to an Ollama-compatible server and streams the answer as it is generated.
The server address and model come from --model, the ~/.ai_config file, or the OLLAMA_API_BASE
and OLLAMA_MODEL environment variables. Use --clip to include the clipboard, usually the output
of the last command, in front of the prompt.`
	rootUsageExample = `  # Ask a question
  ai how do I list open ports

  # Explain the output of the last command copied to the clipboard
  ai --clip why did this fail

  # Use a different model for one prompt
  ai -m llama3 write a bash loop over files

  # Store the default model
  ai --config OLLAMA_MODEL=llama3

  # Show the effective configuration
  ai --config-list`

	clipFlagDescription       = "prepend the clipboard content to the prompt"
	modelFlagDescription      = "model to use, overriding configuration and environment"
	configFlagDescription     = "store a KEY=value setting in the configuration file and exit"
	configListFlagDescription = "print the configuration and exit"
	timeoutFlagDescription    = "abort the request after this duration (0 waits indefinitely)"
	debugFlagDescription      = "log pipeline diagnostics to stderr"
	versionFlagDescription    = "display application version"

	configPathFieldName = "config_path"
	loadedConfigMessage = "configuration loaded"
	preparedMessage     = "request prepared"
)

// Environment carries the process-level collaborators of the command.
type Environment struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *zap.Logger
	LogLevel zap.AtomicLevel
	// Lookup reads environment variables.
	Lookup config.LookupFunc
	// ConfigPath overrides the configuration file location when not empty.
	ConfigPath string
	Clipboard  clipboard.Reader
	// NewGenerator builds the wire client for the resolved API base.
	NewGenerator func(apiBase string) stream.Generator
	// SpinnerInterval overrides spinner.Interval when positive.
	SpinnerInterval time.Duration
}

// NewEnvironment returns the collaborators backed by the real process, terminal and network.
func NewEnvironment(logger *zap.Logger, level zap.AtomicLevel) Environment {
	return Environment{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Logger:    logger,
		LogLevel:  level,
		Lookup:    config.NewEnvironmentLookup(),
		Clipboard: clipboard.NewService(),
		NewGenerator: func(apiBase string) stream.Generator {
			return ollama.NewClient(apiBase, &http.Client{})
		},
	}
}

// commandOptions stores the parsed flag values.
type commandOptions struct {
	useClipboard bool
	model        string
	setting      string
	listSettings bool
	timeout      time.Duration
	debug        bool
	showVersion  bool
}

// Execute runs the ai application. Every returned error has been through the failure cleanup:
// the prompt pipeline reports its own failures and the rest are reported here.
func Execute(ctx context.Context, environment Environment, arguments []string) error {
	if environment.Logger == nil {
		environment.Logger = zap.NewNop()
	}
	rootCommand := createRootCommand(environment)
	rootCommand.SetArgs(arguments)
	rootCommand.SetOut(environment.Stdout)
	rootCommand.SetErr(environment.Stderr)
	executionError := rootCommand.ExecuteContext(ctx)
	var reported *reportedError
	if executionError != nil && !errors.As(executionError, &reported) {
		return reportWithDefaultMarkers(environment, executionError)
	}
	return executionError
}

// createRootCommand builds the root Cobra command.
func createRootCommand(environment Environment) *cobra.Command {
	var options commandOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.debug {
				environment.LogLevel.SetLevel(zapcore.DebugLevel)
			}
			switch {
			case options.showVersion:
				fmt.Fprintf(environment.Stdout, versionTemplate, utils.GetApplicationVersion())
				return nil
			case options.setting != "":
				return runConfigEdit(environment, options.setting)
			case options.listSettings:
				return runConfigList(environment)
			default:
				return runPrompt(command.Context(), environment, options, strings.Join(arguments, promptWordSeparator))
			}
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.SetInterspersed(false)
	registerBooleanFlag(flagSet, &options.useClipboard, clipFlagName, clipFlagShorthand, clipFlagDescription)
	flagSet.StringVarP(&options.model, modelFlagName, modelFlagShorthand, "", modelFlagDescription)
	flagSet.StringVarP(&options.setting, configFlagName, configFlagShorthand, "", configFlagDescription)
	registerBooleanFlag(flagSet, &options.listSettings, configListFlagName, configListShorthand, configListFlagDescription)
	flagSet.DurationVar(&options.timeout, timeoutFlagName, 0, timeoutFlagDescription)
	registerBooleanFlag(flagSet, &options.debug, debugFlagName, "", debugFlagDescription)
	registerBooleanFlag(flagSet, &options.showVersion, versionFlagName, "", versionFlagDescription)
	return rootCommand
}

func resolveConfigPath(environment Environment) (string, error) {
	if environment.ConfigPath != "" {
		return environment.ConfigPath, nil
	}
	return config.DefaultPath()
}

// runPrompt dispatches one prompt. Every failure, whichever stage it comes from, goes through the
// failure reporter before runPrompt returns.
func runPrompt(ctx context.Context, environment Environment, options commandOptions, rawPrompt string) error {
	store := config.NewStoreFromSettings(nil)
	var renderer output.StreamRenderer
	var animator *spinner.Animator
	reporter := func(cause error) error {
		if renderer == nil {
			renderer = output.NewRawStreamRenderer(environment.Stdout, store.OutputStart(), store.OutputEnd())
		}
		return failureReporter{stdout: environment.Stdout, logger: environment.Logger, animator: animator, renderer: renderer}.report(cause)
	}

	configPath, pathError := resolveConfigPath(environment)
	if pathError != nil {
		return reporter(pathError)
	}
	loadedStore, storeError := config.NewStore(configPath)
	if storeError != nil {
		return reporter(storeError)
	}
	store = loadedStore
	environment.Logger.Debug(loadedConfigMessage, zap.String(configPathFieldName, configPath))

	renderer = output.NewRawStreamRenderer(environment.Stdout, store.OutputStart(), store.OutputEnd())
	animator = spinner.New(environment.Stdout, store.SpinnerGlyphs())

	var generator stream.Generator
	dispatcher := stream.NewDispatcher(stream.Options{
		Generator: stream.GeneratorFunc(func(ctx context.Context, request ollama.GenerateRequest, onChunk ollama.ChunkHandler) error {
			return generator.Generate(ctx, request, onChunk)
		}),
		Renderer: renderer,
		Spinner:  animator,
		Interval: environment.SpinnerInterval,
		Timeout:  options.timeout,
		Logger:   environment.Logger,
	})

	prepare := func() (ollama.GenerateRequest, error) {
		// an empty prompt is reported ahead of missing configuration
		if rawPrompt == "" {
			return ollama.GenerateRequest{}, prompt.ErrEmptyPrompt
		}
		apiBase, apiBaseError := store.ResolveAPIBase("", environment.Lookup)
		if apiBaseError != nil {
			return ollama.GenerateRequest{}, apiBaseError
		}
		model, modelError := store.ResolveModel(options.model, environment.Lookup)
		if modelError != nil {
			return ollama.GenerateRequest{}, modelError
		}
		userPrompt, promptError := prompt.BuildUserPrompt(rawPrompt, options.useClipboard, clipboardFetcher(environment.Clipboard))
		if promptError != nil {
			return ollama.GenerateRequest{}, promptError
		}
		info := platform.Detect(platform.Lookup(environment.Lookup))
		systemPrompt := prompt.BuildSystemPrompt(store.SystemPromptTemplate(), info.Platform, info.User, info.Shell, store.CodeColor())
		generator = environment.NewGenerator(apiBase)
		environment.Logger.Debug(preparedMessage,
			zap.String("api_base", apiBase),
			zap.String("model", model),
			zap.Bool("clipboard", options.useClipboard),
		)
		return ollama.GenerateRequest{Model: model, System: systemPrompt, Prompt: userPrompt}, nil
	}

	if runError := dispatcher.Run(ctx, prepare); runError != nil {
		return reporter(runError)
	}
	return renderer.Flush()
}

func clipboardFetcher(reader clipboard.Reader) prompt.ClipboardFetcher {
	if reader == nil {
		return nil
	}
	return reader.Read
}
