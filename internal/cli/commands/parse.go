package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/sqltree/internal/cli/output"
	"github.com/leapstack-labs/sqltree/pkg/format"
	"github.com/leapstack-labs/sqltree/pkg/sqltree"
	"github.com/spf13/cobra"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Watch      bool
	Strict     bool
	Whitespace bool
	MaxDepth   int
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <path>...",
		Short: "Build and print the parse tree of token documents",
		Long: `Build the parse tree of one or more token documents and print it.

A token document is the JSON or YAML output of a SQL tokenizer. Directories
are searched for .json, .yaml and .yml files.

Output adapts to the environment: an indented outline on a terminal, markdown
when piped. Use -o json, -o yaml or -o xml for tree documents.`,
		Example: `  # Print the tree of one document
  sqltree parse query.tokens.json

  # Tree document for tools
  sqltree parse query.tokens.json -o xml

  # Fail when the tree was built around structural anomalies
  sqltree parse --strict queries/

  # Rebuild whenever a document changes
  sqltree parse --watch queries/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Rebuild when documents change")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit non-zero when structural anomalies are found")
	cmd.Flags().BoolVar(&opts.Whitespace, "whitespace", false, "Show whitespace nodes in the outline")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "Limit outline depth (0 for unlimited)")
	cmd.Flags().IntP("parallelism", "j", 0, "Number of documents parsed at once")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	cc := NewCommandContext(cmd)
	strict := boolFlagOr(cmd, "strict", cc.Cfg.Strict)
	parallelism := intFlagOr(cmd, "parallelism", cc.Cfg.Parallelism)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	once := func(ctx context.Context) error {
		files, err := parseFiles(ctx, cc, args, parallelism)
		if err != nil {
			return err
		}
		if err := writeTrees(cc.Renderer, files, opts); err != nil {
			return err
		}
		return report(cc, files, strict)
	}

	if !opts.Watch {
		return once(ctx)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Failures while watching are reported and the watch goes on.
	rerun := func(ctx context.Context) {
		if err := once(ctx); err != nil {
			cc.Renderer.Error(err.Error())
		}
	}
	rerun(ctx)
	return watchPaths(ctx, cc, args, cc.Cfg.WatchDebounce, rerun)
}

// writeTrees prints every tree in the renderer's effective mode.
func writeTrees(r *output.Renderer, files []parsedFile, opts *ParseOptions) error {
	outline := format.Options{Whitespace: opts.Whitespace, MaxDepth: opts.MaxDepth}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		for _, f := range files {
			if err := format.WriteJSON(r.Writer(), f.Tree); err != nil {
				return err
			}
		}
		return nil
	case output.ModeYAML:
		trees := make([]*sqltree.Tree, len(files))
		for i, f := range files {
			trees[i] = f.Tree
		}
		return format.WriteYAML(r.Writer(), trees...)
	case output.ModeXML:
		if len(files) != 1 {
			return fmt.Errorf("xml output takes exactly one document, got %d", len(files))
		}
		return format.WriteXML(r.Writer(), files[0].Tree)
	case output.ModeMarkdown:
		for i, f := range files {
			if i > 0 {
				r.Println("")
			}
			r.Println(output.FormatHeader(2, f.Path))
			r.Println("")
			r.Println(output.FormatCodeBlock("text", format.Outline(f.Tree, outline)))
		}
		return nil
	default:
		for i, f := range files {
			if len(files) > 1 {
				if i > 0 {
					r.Println("")
				}
				r.Header(2, f.Path)
			}
			r.Printf("%s", format.Outline(f.Tree, outline))
		}
		return nil
	}
}
