package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// CombineFiles reads the given email files concurrently and joins them
// into a single text blob. Each file is prefixed with a header naming
// it, so the model can tell where one email ends and the next begins.
// Output order follows the argument order regardless of read order.
func CombineFiles(ctx context.Context, paths []string) (string, error) {
	if len(paths) == 0 {
		return "", nil
	}

	parts := make([]string, len(paths))
	g, ctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			parts[i] = fmt.Sprintf("\n--- START OF EMAIL FILE: %s ---\n%s", filepath.Base(path), data)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", err
	}

	return strings.Join(parts, "\n"), nil
}
