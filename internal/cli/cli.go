// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SallahBoussettah/repodigest/internal/classify"
	"github.com/SallahBoussettah/repodigest/internal/config"
	"github.com/SallahBoussettah/repodigest/internal/output"
	"github.com/SallahBoussettah/repodigest/internal/pattern"
	"github.com/SallahBoussettah/repodigest/internal/services/clipboard"
	"github.com/SallahBoussettah/repodigest/internal/source"
	"github.com/SallahBoussettah/repodigest/internal/tokenizer"
	"github.com/SallahBoussettah/repodigest/internal/types"
	"github.com/SallahBoussettah/repodigest/internal/utils"
	"github.com/SallahBoussettah/repodigest/internal/walker"
)

// applicationVersion is overridden at build time via
// -ldflags "-X github.com/SallahBoussettah/repodigest/internal/cli.applicationVersion=...".
var applicationVersion = "dev"

const (
	rootUse              = "repodigest [source]"
	rootShortDescription = "produce an LLM-ready digest of a repository"
	rootLongDescription  = `repodigest walks a local directory or a freshly cloned repository and
produces a deterministic, size-bounded, classified digest of its contents.
The digest is rendered as text, JSON, or Markdown and includes a directory
tree, per-file content, aggregate statistics, and a token estimate.`

	includeFlagName        = "include"
	excludeFlagName        = "exclude"
	languageFlagName       = "language"
	maxSizeFlagName        = "max-size"
	maxDepthFlagName       = "max-depth"
	includeIgnoredFlagName = "include-ignored"
	branchFlagName         = "branch"
	formatFlagName         = "format"
	outputFlagName         = "output"
	tokensFlagName         = "tokens"
	modelFlagName          = "model"
	copyFlagName           = "copy"

	includeFlagDescription        = "include glob; repeatable, empty means every non-denied file"
	excludeFlagDescription        = "exclude glob applied after includes; repeatable"
	languageFlagDescription       = "restrict files to the named language; repeatable"
	maxSizeFlagDescription        = "maximum file size in bytes; larger files are skipped"
	maxDepthFlagDescription       = "maximum directory depth below the root; -1 is unlimited"
	includeIgnoredFlagDescription = "skip ignore files (.gitignore and friends); built-in excludes still apply"
	branchFlagDescription         = "branch to clone for remote sources"
	formatFlagDescription         = "output format: text, json, or markdown"
	outputFlagDescription         = "write the digest to a file instead of stdout"
	tokensFlagDescription         = "estimate the token count of the rendered digest"
	modelFlagDescription          = "tokenizer model used for token estimation"
	copyFlagDescription           = "copy the rendered digest to the system clipboard"

	defaultSourceDescriptor = "."
	defaultMaxFileSizeBytes = int64(10 * 1024 * 1024)
	defaultMaxDepth         = -1
	defaultTokenizerModel   = "gpt-4o"

	invalidFormatMessageFormat    = "invalid format value %q"
	warningTokenizerInitFormat    = "tokenizer unavailable, using byte-length heuristic: %v"
	warningClipboardFailedFormat  = "unable to copy digest to clipboard: %v"
	errorWriteOutputFormat        = "writing digest to %s: %w"
	errorLoadConfigurationFormat  = "loading application configuration: %w"
	infoRemoteMaterializedFormat  = "cloned %s"
	outputFileMode                = 0o644
)

// digestFlags collects every flag value of the root command.
type digestFlags struct {
	includeGlobs   []string
	excludeGlobs   []string
	languages      []string
	maxSizeBytes   int64
	maxDepth       int
	includeIgnored bool
	branch         string
	format         string
	outputPath     string
	countTokens    bool
	tokenizerModel string
	copyToClipbrd  bool
}

// Execute runs the repodigest application with the provided logger.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(logger)
	return rootCommand.Execute()
}

// createRootCommand builds the root cobra command.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	flags := &digestFlags{}

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Version:      applicationVersion,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			sourceDescriptor := defaultSourceDescriptor
			if len(arguments) == 1 {
				sourceDescriptor = arguments[0]
			}
			applyConfigurationDefaults(command, flags)
			if !output.IsSupportedFormat(flags.format) {
				return fmt.Errorf(invalidFormatMessageFormat, flags.format)
			}
			return runDigest(command.Context(), sourceDescriptor, flags, logger)
		},
	}

	commandFlags := rootCommand.Flags()
	commandFlags.StringSliceVarP(&flags.includeGlobs, includeFlagName, "i", nil, includeFlagDescription)
	commandFlags.StringSliceVarP(&flags.excludeGlobs, excludeFlagName, "e", nil, excludeFlagDescription)
	commandFlags.StringSliceVar(&flags.languages, languageFlagName, nil, languageFlagDescription)
	commandFlags.Int64Var(&flags.maxSizeBytes, maxSizeFlagName, defaultMaxFileSizeBytes, maxSizeFlagDescription)
	commandFlags.IntVar(&flags.maxDepth, maxDepthFlagName, defaultMaxDepth, maxDepthFlagDescription)
	commandFlags.BoolVar(&flags.includeIgnored, includeIgnoredFlagName, false, includeIgnoredFlagDescription)
	commandFlags.StringVar(&flags.branch, branchFlagName, "", branchFlagDescription)
	commandFlags.StringVarP(&flags.format, formatFlagName, "f", types.FormatText, formatFlagDescription)
	commandFlags.StringVarP(&flags.outputPath, outputFlagName, "o", "", outputFlagDescription)
	commandFlags.BoolVar(&flags.countTokens, tokensFlagName, true, tokensFlagDescription)
	commandFlags.StringVar(&flags.tokenizerModel, modelFlagName, defaultTokenizerModel, modelFlagDescription)
	commandFlags.BoolVar(&flags.copyToClipbrd, copyFlagName, false, copyFlagDescription)

	return rootCommand
}

// applyConfigurationDefaults overlays application configuration onto flags
// the user did not set explicitly. Configuration load failures only warn:
// explicit flags and built-in defaults still produce a usable run.
func applyConfigurationDefaults(command *cobra.Command, flags *digestFlags) {
	configuration, loadError := config.LoadApplicationConfiguration("")
	if loadError != nil {
		fmt.Fprintf(command.ErrOrStderr(), "Warning: %v\n", fmt.Errorf(errorLoadConfigurationFormat, loadError))
		return
	}

	if !command.Flags().Changed(formatFlagName) && configuration.Format != "" {
		flags.format = configuration.Format
	}
	if !command.Flags().Changed(maxSizeFlagName) && configuration.MaxFileSizeBytes > 0 {
		flags.maxSizeBytes = configuration.MaxFileSizeBytes
	}
	if !command.Flags().Changed(maxDepthFlagName) && configuration.MaxDepth != nil {
		flags.maxDepth = *configuration.MaxDepth
	}
	if !command.Flags().Changed(modelFlagName) && configuration.TokenizerModel != "" {
		flags.tokenizerModel = configuration.TokenizerModel
	}
	if !command.Flags().Changed(tokensFlagName) && configuration.Tokens != nil {
		flags.countTokens = *configuration.Tokens
	}
	flags.excludeGlobs = append(flags.excludeGlobs, configuration.Exclude...)
}

// runDigest executes the digest pipeline: materialize, resolve patterns,
// walk, render, estimate tokens, and deliver the result.
func runDigest(parentCtx context.Context, sourceDescriptor string, flags *digestFlags, logger *zap.Logger) error {
	ctx, stopSignals := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	sink := utils.NewZapSink(logger)

	materialized, materializeError := source.Materialize(ctx, sourceDescriptor, source.Options{Branch: flags.branch})
	if materializeError != nil {
		return materializeError
	}
	defer func() {
		if cleanupError := materialized.Cleanup(); cleanupError != nil {
			sink.Warnf("cleanup of temporary clone failed: %v", cleanupError)
		}
	}()
	if source.IsRemote(sourceDescriptor) {
		sink.Infof(infoRemoteMaterializedFormat, sourceDescriptor)
	}

	var ignoreFilePatterns []string
	if !flags.includeIgnored {
		ignoreFilePatterns = config.LoadIgnorePatterns(materialized.Root(), sink)
	}

	resolver := pattern.NewResolver(pattern.ResolverOptions{
		IgnoreFilePatterns: ignoreFilePatterns,
		IncludeIgnored:     flags.includeIgnored,
		IncludeGlobs:       flags.includeGlobs,
		ExcludeGlobs:       flags.excludeGlobs,
		Languages:          flags.languages,
		Sink:               sink,
	})

	result, walkError := walker.Walk(ctx, walker.Options{
		Root:             materialized.Root(),
		Resolver:         resolver,
		Classifier:       classify.NewClassifier(),
		MaxFileSizeBytes: flags.maxSizeBytes,
		MaxDepth:         flags.maxDepth,
		Sink:             sink,
	})
	if walkError != nil {
		return walkError
	}

	digest := output.Digest{Root: result.Root, Stats: result.Stats}
	rendered, renderError := output.Render(flags.format, digest)
	if renderError != nil {
		return renderError
	}

	if flags.countTokens {
		counter, _, counterError := tokenizer.NewCounter(flags.tokenizerModel)
		if counterError != nil {
			sink.Warnf(warningTokenizerInitFormat, counterError)
		}
		result.Stats.EstimatedTokens = tokenizer.Estimate(counter, rendered)
		rendered, renderError = output.Render(flags.format, digest)
		if renderError != nil {
			return renderError
		}
	}

	if deliverError := deliver(rendered, flags, sink); deliverError != nil {
		return deliverError
	}
	return nil
}

// deliver writes the rendered digest to stdout or the requested file, then
// optionally copies it to the clipboard.
func deliver(rendered string, flags *digestFlags, sink utils.Sink) error {
	if flags.outputPath != "" {
		if writeError := os.WriteFile(flags.outputPath, []byte(rendered), outputFileMode); writeError != nil {
			return fmt.Errorf(errorWriteOutputFormat, flags.outputPath, writeError)
		}
	} else {
		fmt.Print(rendered)
	}

	if flags.copyToClipbrd {
		if copyError := clipboard.NewService().Copy(rendered); copyError != nil {
			sink.Warnf(warningClipboardFailedFormat, copyError)
		}
	}
	return nil
}
