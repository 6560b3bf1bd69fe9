package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqltree/internal/loader"
	"github.com/leapstack-labs/sqltree/pkg/parser"
	"github.com/leapstack-labs/sqltree/pkg/sqltree"
	"github.com/leapstack-labs/sqltree/pkg/token"
	"golang.org/x/sync/errgroup"
)

// parsedFile is one token document and the tree built from it.
type parsedFile struct {
	Path   string
	Stream token.Stream
	Tree   *sqltree.Tree
}

// parseFiles discovers token documents under paths and builds their trees,
// at most parallelism at a time. Every file gets its own parser, so builds
// share nothing. Results keep the discovered order.
func parseFiles(ctx context.Context, cc *CommandContext, paths []string, parallelism int) ([]parsedFile, error) {
	files, err := loader.Discover(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no token documents found (want .json, .yaml or .yml files)")
	}

	ld, err := loader.New(cc.Cfg.TokenAliases, cc.Logger)
	if err != nil {
		return nil, err
	}

	if parallelism < 1 {
		parallelism = 1
	}

	results := make([]parsedFile, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stream, err := ld.LoadFile(path)
			if err != nil {
				return err
			}
			tree, err := parser.Parse(stream, parser.WithLogger(cc.Logger.With("path", path)))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = parsedFile{Path: path, Stream: stream, Tree: tree}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	cc.Logger.Debug("parsed token documents", "files", len(results), "parallelism", parallelism)
	return results, nil
}

// report writes the per-file warnings and, in strict mode, returns a
// StructuralError naming every file whose tree has its error flag set.
func report(cc *CommandContext, files []parsedFile, strict bool) error {
	var broken []string
	for _, f := range files {
		if f.Tree.ErrorFound {
			broken = append(broken, f.Path)
			cc.Renderer.Warning(f.Path + ": structural anomalies found; output may be unreliable")
		}
		if f.Tree.DataLossPossible && cc.Cfg.WarnDataLoss {
			cc.Renderer.Warning(f.Path + ": comments were reordered around compound keywords")
		}
	}
	if strict && len(broken) > 0 {
		return &StructuralError{Paths: broken}
	}
	return nil
}
