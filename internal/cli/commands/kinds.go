package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/sqltree/internal/cli/output"
	"github.com/leapstack-labs/sqltree/pkg/token"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// KindInfo describes one token kind a document may use.
type KindInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Label       string   `json:"label" yaml:"label"`
	Description string   `json:"description" yaml:"description"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// NewKindsCommand creates the kinds command.
func NewKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the token kinds accepted in token documents",
		Long: `List every token kind a token document may use, with the aliases
configured under token_aliases in sqltree.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			if err := cc.Cfg.RegisterAliases(); err != nil {
				return err
			}
			return writeKinds(cc.Renderer, listKinds())
		},
	}
}

func listKinds() []KindInfo {
	title := cases.Title(language.English)

	byKind := make(map[token.Kind][]string)
	for alias, k := range token.RegisteredAliases() {
		byKind[k] = append(byKind[k], alias)
	}

	kinds := token.Kinds()
	infos := make([]KindInfo, len(kinds))
	for i, k := range kinds {
		aliases := byKind[k]
		sort.Strings(aliases)
		infos[i] = KindInfo{
			Name:        k.String(),
			Label:       title.String(strings.ReplaceAll(strings.ToLower(k.String()), "_", " ")),
			Description: k.Description(),
			Aliases:     aliases,
		}
	}
	return infos
}

func writeKinds(r *output.Renderer, infos []KindInfo) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case output.ModeYAML:
		enc := yaml.NewEncoder(r.Writer())
		enc.SetIndent(2)
		if err := enc.Encode(infos); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case output.ModeXML:
		return fmt.Errorf("xml output is not supported by kinds")
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.AppendHeader(table.Row{"Kind", "Label", "Description", "Aliases"})
	for _, info := range infos {
		t.AppendRow(table.Row{info.Name, info.Label, info.Description, strings.Join(info.Aliases, ", ")})
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return nil
	}
	t.SetStyle(table.StyleLight)
	t.Render()
	return nil
}
