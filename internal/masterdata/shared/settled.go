package shared

import (
	"context"

	"golang.org/x/sync/errgroup"

	internalShared "github.com/kaizen-academy/kaizen-admin/internal/shared"
)

// Settled runs every fetch concurrently and waits for all of them. A failure in
// one fetch does not cancel the others; errs[i] holds the outcome of fetches[i].
func Settled(ctx context.Context, fetches ...func(context.Context) error) []error {
	errs := make([]error, len(fetches))
	var g errgroup.Group
	for i, fetch := range fetches {
		g.Go(func() error {
			errs[i] = fetch(ctx)
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

// FirstAuthError returns the first authentication failure among errs. Settled
// fetches report other failures per section, but an unusable token ends the page.
func FirstAuthError(errs ...error) error {
	for _, err := range errs {
		if err != nil && internalShared.IsAuthError(err) {
			return err
		}
	}
	return nil
}
