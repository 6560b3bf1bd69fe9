package commands

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/sqltree/internal/cli/output"
	"github.com/leapstack-labs/sqltree/pkg/sqltree"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// FileSummary describes the tree built from one token document.
type FileSummary struct {
	XMLName        xml.Name `json:"-" yaml:"-" xml:"file"`
	Path           string   `json:"path" yaml:"path" xml:"path,attr"`
	Tokens         int      `json:"tokens" yaml:"tokens" xml:"tokens,attr"`
	Statements     int      `json:"statements" yaml:"statements" xml:"statements,attr"`
	Batches        int      `json:"batches" yaml:"batches" xml:"batches,attr"`
	Nodes          int      `json:"nodes" yaml:"nodes" xml:"nodes,attr"`
	ErrorFound     bool     `json:"errorFound" yaml:"errorFound" xml:"errorFound,attr"`
	DataLossLikely bool     `json:"dataLossLikely" yaml:"dataLossLikely" xml:"dataLossLikely,attr"`
}

type checkReport struct {
	XMLName xml.Name      `xml:"check"`
	Files   []FileSummary `xml:"file"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Summarize the trees of token documents",
		Long: `Build the parse tree of every token document and print one summary row
per file: token, statement, batch and node counts, and whether the tree was
built around structural anomalies or had comments reordered.`,
		Example: `  sqltree check queries/
  sqltree check --strict a.json b.yaml
  sqltree check queries/ -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args)
		},
	}

	cmd.Flags().Bool("strict", false, "Exit non-zero when structural anomalies are found")
	cmd.Flags().IntP("parallelism", "j", 0, "Number of documents parsed at once")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)
	strict := boolFlagOr(cmd, "strict", cc.Cfg.Strict)
	parallelism := intFlagOr(cmd, "parallelism", cc.Cfg.Parallelism)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	files, err := parseFiles(ctx, cc, args, parallelism)
	if err != nil {
		return err
	}

	summaries := make([]FileSummary, len(files))
	for i, f := range files {
		summaries[i] = summarize(f)
	}
	if err := writeSummaries(cc.Renderer, summaries); err != nil {
		return err
	}
	return report(cc, files, strict)
}

func summarize(f parsedFile) FileSummary {
	return FileSummary{
		Path:           f.Path,
		Tokens:         len(f.Stream.Tokens),
		Statements:     f.Tree.Count(sqltree.Statement),
		Batches:        f.Tree.Count(sqltree.BatchSeparator) + 1,
		Nodes:          f.Tree.Len(),
		ErrorFound:     f.Tree.ErrorFound,
		DataLossLikely: f.Tree.DataLossPossible,
	}
}

func writeSummaries(r *output.Renderer, summaries []FileSummary) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	case output.ModeYAML:
		enc := yaml.NewEncoder(r.Writer())
		enc.SetIndent(2)
		if err := enc.Encode(summaries); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case output.ModeXML:
		enc := xml.NewEncoder(r.Writer())
		enc.Indent("", "  ")
		if err := enc.Encode(checkReport{Files: summaries}); err != nil {
			return fmt.Errorf("encode xml: %w", err)
		}
		r.Println("")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.AppendHeader(table.Row{"File", "Tokens", "Statements", "Batches", "Nodes", "Anomalies", "Comments Moved"})
	var broken, moved int
	for _, s := range summaries {
		t.AppendRow(table.Row{s.Path, s.Tokens, s.Statements, s.Batches, s.Nodes, yesNo(s.ErrorFound), yesNo(s.DataLossLikely)})
		if s.ErrorFound {
			broken++
		}
		if s.DataLossLikely {
			moved++
		}
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		r.Println("")
		r.Println(output.FormatKeyValue("Files", strconv.Itoa(len(summaries))))
		r.Println(output.FormatKeyValue("Structural anomalies", strconv.Itoa(broken)))
		r.Println(output.FormatKeyValue("Comments reordered", strconv.Itoa(moved)))
		return nil
	}

	t.SetStyle(table.StyleRounded)
	t.Render()

	status := "success"
	switch {
	case broken > 0:
		status = "error"
	case moved > 0:
		status = "warning"
	}
	r.StatusLine(fmt.Sprintf("%d files", len(summaries)), status,
		fmt.Sprintf("%d with anomalies, %d with comments reordered", broken, moved))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
