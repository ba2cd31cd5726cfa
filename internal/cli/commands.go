package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"morphemb/internal/config"
	"morphemb/internal/dictionary"
	"morphemb/internal/domain"
	"morphemb/internal/report"
	"morphemb/internal/tui"
)

func newSegmentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "segment WORD...",
		Short: "Print the morpheme segmentation of each word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seg := a.newSegmenter()
			out := cmd.OutOrStdout()
			for _, word := range args {
				morphemes := seg.Segment(word)
				if len(morphemes) == 0 {
					fmt.Fprintf(out, "- %s: no morphemic chunks produced\n", word)
					continue
				}
				fmt.Fprintf(out, "- %s: %s\n", seg.Clean(word), report.Breakdown(morphemes))
			}
			return nil
		},
	}
}

func newFeaturesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "features TEXT...",
		Short: "Print the feature vector of a definition (arguments are joined with spaces)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vec := a.newExtractor().Extract(strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), report.FormatVector(vec, a.cfg.Report.Precision))
			return nil
		},
	}
}

func newSimilarCmd(a *app) *cobra.Command {
	var topK int
	cmd := &cobra.Command{
		Use:   "similar KIND:TEXT [wordlist]",
		Short: "List the morphemes whose embeddings are closest to the given one",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := domain.ParseKey(args[0])
			if err != nil {
				return err
			}
			w := a.newWriter(cmd.OutOrStdout())
			svc, rep, err := a.process(args[1:], w, false)
			if err != nil || rep == nil {
				return err
			}
			res, err := svc.Similar(key, topK)
			if err != nil {
				return err
			}
			w.Similar(key, res)
			return nil
		},
	}
	cmd.Flags().IntVar(&topK, "top", 5, "Number of neighbours to show")
	return cmd
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [wordlist]",
		Short: "Process the words and browse morpheme neighbours interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := a.newWriter(cmd.OutOrStdout())
			svc, rep, err := a.process(args, w, false)
			if err != nil || rep == nil {
				return err
			}
			m := tui.New(svc, rep, a.cfg.Report.Precision)
			if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("failed to run TUI: %w", err)
			}
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration (default ~/.config/morphemb/config.yaml)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			var err error
			if len(args) > 0 {
				path, err = dictionary.ExpandHome(args[0])
			} else {
				path, err = config.DefaultUserConfigPath()
			}
			if err != nil {
				return err
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.AddCommand(initCmd)
	return cmd
}
