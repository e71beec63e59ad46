// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/campusshare/internal/platform/ctxutil"
)

// Dependency is one fetch a page needs before it can render.
type Dependency struct {
	Name     string
	Required bool
	Fetch    func(ctx context.Context) error

	// Fallback runs when an optional fetch fails. It sets the neutral value.
	Fallback func()
}

// Required declares a dependency whose failure fails the whole page.
func Required(name string, fetch func(ctx context.Context) error) Dependency {
	return Dependency{Name: name, Required: true, Fetch: fetch}
}

// Optional declares a dependency that degrades to fallback on failure.
func Optional(name string, fetch func(ctx context.Context) error, fallback func()) Dependency {
	return Dependency{Name: name, Fetch: fetch, Fallback: fallback}
}

/*
Gather fetches all dependencies concurrently.

Description: Optional failures are logged and replaced by their fallback.
The first required failure cancels the remaining fetches and is returned
unwrapped, so callers can classify it (e.g. NOT_FOUND).

Parameters:
  - ctx: context.Context (its logger is used for degraded dependencies)
  - deps: ...Dependency

Returns:
  - error: The first required failure
*/
func Gather(ctx context.Context, deps ...Dependency) error {
	group, groupCtx := errgroup.WithContext(ctx)

	for _, dep := range deps {
		group.Go(func() error {
			err := dep.Fetch(groupCtx)
			if err == nil {
				return nil
			}
			if dep.Required {
				return err
			}

			ctxutil.Logger(ctx).Warn("view_dependency_degraded",
				"dependency", dep.Name,
				"error", err,
			)
			if dep.Fallback != nil {
				dep.Fallback()
			}
			return nil
		})
	}

	return group.Wait()
}
