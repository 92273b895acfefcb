package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nilehmann/codesync/internal/check"
	"github.com/nilehmann/codesync/internal/diag"
	"github.com/nilehmann/codesync/internal/diagfmt"
	"github.com/nilehmann/codesync/internal/scan"
	"github.com/nilehmann/codesync/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [directory]",
	Short: "Check that annotated code sites agree with their declared counts",
	Long: `Scan the directory tree (default: the current directory) for CODESYNC
comments and report malformed annotations, count mismatches and style
violations. Exits non-zero when any finding is reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().String("style", "", "required label case style (camel|pascal|snake|screaming-snake|kebab|train)")
	checkCmd.Flags().StringSlice("acronyms", nil, "acronyms to uppercase in style suggestions")
	checkCmd.Flags().Bool("strict-whitespace", false, "flag arguments with surrounding whitespace")
	checkCmd.Flags().String("label-pattern", "", "regular expression every label must match")
	checkCmd.Flags().Uint16("default-count", 0, "count assumed for annotations without one (default 2)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("ui", false, "show interactive scan progress")
}

// checkFlags carries the flag values that feed the checker config.
type checkFlags struct {
	style            string
	acronyms         []string
	strictWhitespace bool
	labelPattern     string
	defaultCount     uint16
	defaultCountSet  bool
}

func runCheck(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	withUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	flags, err := collectCheckFlags(cmd)
	if err != nil {
		return err
	}
	fc, err := loadFileConfig(root)
	if err != nil {
		return err
	}
	cfg, err := buildCheckConfig(fc, flags)
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	collectOpts := scan.CollectOptions{IgnoreFile: fc.Scan.IgnoreFile}

	var matches *scan.Matches
	if withUI && isTerminal(os.Stdout) {
		matches, err = collectWithUI("checking "+root, fs, root, collectOpts)
	} else {
		matches, err = scan.Collect(fs, root, collectOpts)
	}
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	bag := diag.NewBag(maxDiagnostics)
	check.New(cfg, diag.BagReporter{Bag: bag}).Check(matches)
	bag.Sort()
	bag.Dedup()

	colored, err := useColor(cmd)
	if err != nil {
		return err
	}
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, bag, fs, diagfmt.PrettyOpts{
			Color:     colored,
			PathMode:  pathMode,
			ShowNotes: withNotes,
			ShowFixes: suggest,
		})
	case "short":
		output := diag.FormatShortDiagnostics(bag.Items(), fs, withNotes)
		if output != "" {
			fmt.Fprintln(os.Stdout, output)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest,
		}
		if err := diagfmt.JSON(os.Stdout, bag, fs, jsonOpts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if bag.HasErrors() {
		// Suppress cobra usage output; the findings were already printed.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

func collectCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	style, err := cmd.Flags().GetString("style")
	if err != nil {
		return checkFlags{}, fmt.Errorf("failed to get style flag: %w", err)
	}
	acronyms, err := cmd.Flags().GetStringSlice("acronyms")
	if err != nil {
		return checkFlags{}, fmt.Errorf("failed to get acronyms flag: %w", err)
	}
	strictWhitespace, err := cmd.Flags().GetBool("strict-whitespace")
	if err != nil {
		return checkFlags{}, fmt.Errorf("failed to get strict-whitespace flag: %w", err)
	}
	labelPattern, err := cmd.Flags().GetString("label-pattern")
	if err != nil {
		return checkFlags{}, fmt.Errorf("failed to get label-pattern flag: %w", err)
	}
	defaultCount, err := cmd.Flags().GetUint16("default-count")
	if err != nil {
		return checkFlags{}, fmt.Errorf("failed to get default-count flag: %w", err)
	}

	return checkFlags{
		style:            style,
		acronyms:         acronyms,
		strictWhitespace: strictWhitespace,
		labelPattern:     labelPattern,
		defaultCount:     defaultCount,
		defaultCountSet:  cmd.Flags().Changed("default-count"),
	}, nil
}
