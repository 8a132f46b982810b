package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/callsecure/internal/common"
)

// Export writes a snapshot of the local store to path.
func (a *App) Export(ctx context.Context, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := a.authService.Export(ctx, f); err != nil {
		return err
	}
	printlnFn("Exported to", path)
	return nil
}

// Import loads a snapshot from path into the local store. A remembered
// session in the snapshot takes effect on the next start.
func (a *App) Import(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", common.ErrorNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	if err := a.authService.Import(ctx, f); err != nil {
		return err
	}
	printlnFn("Imported from", path)
	return nil
}
