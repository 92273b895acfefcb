package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nilehmann/codesync/internal/scan"
	"github.com/nilehmann/codesync/internal/source"
)

var listCmd = &cobra.Command{
	Use:   "list [flags] [directory]",
	Short: "List every annotation found in the tree, grouped by label",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	listCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	listCmd.Flags().Bool("ui", false, "show interactive scan progress")
}

type occurrenceJSON struct {
	File  string  `json:"file"`
	Line  uint32  `json:"line"`
	Col   uint32  `json:"col"`
	Count *uint16 `json:"count,omitempty"`
}

type labelJSON struct {
	Label       string           `json:"label"`
	Occurrences []occurrenceJSON `json:"occurrences"`
}

func runList(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	withUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}

	fc, err := loadFileConfig(root)
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	collectOpts := scan.CollectOptions{IgnoreFile: fc.Scan.IgnoreFile}

	var matches *scan.Matches
	if withUI && isTerminal(os.Stdout) {
		matches, err = collectWithUI("listing "+root, fs, root, collectOpts)
	} else {
		matches, err = scan.Collect(fs, root, collectOpts)
	}
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	pathFor := func(id source.FileID) string {
		mode := "auto"
		if fullPath {
			mode = "absolute"
		}
		return fs.Get(id).FormatPath(mode, fs.BaseDir())
	}

	groups := sortedLabelGroups(matches)

	switch format {
	case "pretty":
		colored, err := useColor(cmd)
		if err != nil {
			return err
		}
		labelColor := color.New(color.FgCyan, color.Bold)
		for _, g := range groups {
			label := g.label
			if colored {
				label = labelColor.Sprint(label)
			}
			fmt.Fprintf(os.Stdout, "%s (%d)\n", label, len(g.comments))
			for _, comment := range g.comments {
				start, _ := fs.Resolve(comment.Span())
				line := fmt.Sprintf("  %s:%d:%d", pathFor(comment.FileID()), start.Line, start.Col)
				if count := comment.Args().Count; count != nil {
					line += fmt.Sprintf("  count=%d", count.Val)
				}
				fmt.Fprintln(os.Stdout, line)
			}
		}
	case "json":
		out := make([]labelJSON, 0, len(groups))
		for _, g := range groups {
			entry := labelJSON{Label: g.label, Occurrences: make([]occurrenceJSON, 0, len(g.comments))}
			for _, comment := range g.comments {
				start, _ := fs.Resolve(comment.Span())
				occ := occurrenceJSON{
					File: pathFor(comment.FileID()),
					Line: start.Line,
					Col:  start.Col,
				}
				if count := comment.Args().Count; count != nil {
					v := count.Val
					occ.Count = &v
				}
				entry.Occurrences = append(entry.Occurrences, occ)
			}
			out = append(out, entry)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode annotations: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}

type listGroup struct {
	label    string
	comments []scan.Comment
}

// sortedLabelGroups orders groups lexicographically by label; members keep
// scan order.
func sortedLabelGroups(ms *scan.Matches) []listGroup {
	byID := ms.GroupByLabel()
	groups := make([]listGroup, 0, len(byID))
	for id, comments := range byID {
		groups = append(groups, listGroup{
			label:    ms.Interner.MustLookup(id),
			comments: comments,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].label < groups[j].label
	})
	return groups
}
