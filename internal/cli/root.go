package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"morphemb/internal/config"
	"morphemb/internal/dictionary"
	"morphemb/internal/domain"
	"morphemb/internal/embedding/features"
	"morphemb/internal/logger"
	"morphemb/internal/report"
	"morphemb/internal/segmenter"
	"morphemb/internal/service"
	"morphemb/internal/vectorstore/memory"
)

// app carries flag values and the loaded configuration between commands.
type app struct {
	cfgPath  string
	logLevel string
	logFile  string
	cfg      *config.AppConfig
}

// NewRootCmd builds the command tree. MORPHEMB_CONFIG and MORPHEMB_LOG_LEVEL
// provide flag defaults.
func NewRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "morphemb [wordlist]",
		Short: "Segment words into morphemes and derive per-morpheme embeddings from definitions",
		Long: "morphemb splits each word into prefixes, roots and suffixes, turns the word's\n" +
			"dictionary definition into a feature vector, and averages those vectors per morpheme.\n" +
			"Without a word list the built-in dictionary words are used.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
		RunE: a.runPipeline,
	}
	cmd.PersistentFlags().StringVar(&a.cfgPath, "config", os.Getenv("MORPHEMB_CONFIG"), "Path to YAML config file (default ./morphemb.yaml, then ~/.config/morphemb/config.yaml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", os.Getenv("MORPHEMB_LOG_LEVEL"), "Log level: debug, info, warn, error or none (overrides config)")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Also append logs to this file")

	runCmd := &cobra.Command{
		Use:   "run [wordlist]",
		Short: "Process a word list (or the built-in words) and print the embedding matrix",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runPipeline,
	}
	cmd.AddCommand(runCmd, newSegmentCmd(a), newFeaturesCmd(a), newSimilarCmd(a), newTUICmd(a), newConfigCmd())
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) load() error {
	var (
		cfg *config.AppConfig
		err error
	)
	if a.cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(a.cfgPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	level := a.logLevel
	if level == "" {
		level = cfg.Log.Level
	}
	file := a.logFile
	if file == "" {
		file = cfg.Log.File
	}
	if file != "" {
		if file, err = dictionary.ExpandHome(file); err != nil {
			return err
		}
	}
	if err := logger.Init(file, level); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	return nil
}

func (a *app) newSegmenter() *segmenter.Segmenter {
	sc := a.cfg.Segmenter
	return segmenter.New(segmenter.Config{
		Tables:         segmenter.Tables{Prefixes: sc.Prefixes, Suffixes: sc.Suffixes, Roots: sc.Roots},
		ChunkWidth:     sc.ChunkWidth,
		MinRootLength:  sc.MinRootLength,
		FoldDiacritics: sc.FoldDiacritics,
	})
}

func (a *app) newExtractor() *features.Extractor {
	fc := a.cfg.Features
	return features.NewExtractor(features.Config{
		SensoryWords:   fc.SensoryWords,
		AbstractWords:  fc.AbstractWords,
		UniqueWeight:   fc.UniqueWeight,
		SyllableWeight: fc.SyllableWeight,
	})
}

func (a *app) newWriter(out io.Writer) *report.Writer {
	return report.NewWriter(out, report.Options{
		Precision: a.cfg.Report.Precision,
		KeyWidth:  a.cfg.Report.KeyWidth,
	})
}

// process loads the words, runs the pipeline and returns the service for
// follow-up queries. A nil report with a nil error means nothing to do.
func (a *app) process(args []string, w *report.Writer, verbose bool) (*service.PipelineService, *domain.Report, error) {
	dict := dictionary.New(a.cfg.Dictionary.Entries)
	words := dict.Words()
	if len(args) > 0 {
		var err error
		if words, err = dictionary.LoadWordList(args[0]); err != nil {
			return nil, nil, err
		}
	}
	svc := service.NewPipelineService(a.newSegmenter(), a.newExtractor(), dict, memory.NewStorage())
	if len(words) == 0 {
		w.Notice("No words supplied; provide a newline separated list or rely on the built-in sample.")
		return svc, nil, nil
	}
	if verbose {
		w.Processing(len(words))
	}
	rep, err := svc.Process(words)
	if errors.Is(err, service.ErrNoMatches) {
		if verbose {
			w.Report(rep)
		}
		w.Notice("No dictionary entries matched the provided words. Try using the bundled examples.")
		return svc, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return svc, rep, nil
}

func (a *app) runPipeline(cmd *cobra.Command, args []string) error {
	w := a.newWriter(cmd.OutOrStdout())
	_, rep, err := a.process(args, w, true)
	if err != nil || rep == nil {
		return err
	}
	w.Report(rep)
	return nil
}
