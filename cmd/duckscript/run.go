package main

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"duck-engine/config"
	"duck-engine/duckmg"
	"duck-engine/luahost"
)

type scriptResult struct {
	path   string
	output string
	state  *duckmg.GameState
}

// runScripts executes every script in its own interpreter, at most cfg.Jobs
// at a time. Results come back in the order of paths.
func runScripts(ctx context.Context, cfg config.Config, paths []string) ([]scriptResult, error) {
	results := make([]scriptResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := runScript(cfg, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runScript(cfg config.Config, path string) (scriptResult, error) {
	var out bytes.Buffer
	state := luahost.NewState(&out)
	if cfg.Prelude != "" {
		if _, err := luahost.RunFile(state, cfg.Prelude); err != nil {
			return scriptResult{}, fmt.Errorf("prelude: %w", err)
		}
	}
	gs, err := luahost.RunFile(state, path)
	if err != nil {
		return scriptResult{}, err
	}
	return scriptResult{path: path, output: out.String(), state: gs}, nil
}

// summary describes the GameState a script returned.
func (r scriptResult) summary(fen bool) string {
	if r.state == nil {
		return r.path + ": no GameState returned"
	}
	if fen {
		return r.path + ": " + r.state.ToFEN()
	}
	return fmt.Sprintf("%s: w_rooks=0x%016x w_king=0x%016x b_king=0x%016x duck=0x%016x",
		r.path, r.state.WRooks, r.state.WKing, r.state.BKing, r.state.Duck)
}
