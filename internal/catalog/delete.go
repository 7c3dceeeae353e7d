package catalog

import (
	"context"
	"fmt"

	"picbox/internal/logging"
)

// Delete removes a picture. The row is deleted first; artifact removal
// happens after and is best-effort, so a content-store failure can leave
// stray files but never a dangling row. When owner is non-empty it must match
// the picture's recorded owner.
func (e *Engine) Delete(ctx context.Context, id int64, owner string) error {
	pic, err := e.store.GetPicture(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if pic == nil {
		return fmt.Errorf("%w: picture %d", ErrNotFound, id)
	}
	if owner != "" && pic.OwnerID != owner {
		return fmt.Errorf("%w: picture %d does not belong to %q", ErrValidation, id, owner)
	}

	removed, err := e.store.DeletePicture(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if !removed {
		return fmt.Errorf("%w: picture %d", ErrNotFound, id)
	}

	if err := e.files.Delete(pic.Filename, pic.Thumbnail); err != nil {
		e.logger.Warn("picture row deleted but artifacts remain",
			logging.Int64("picture_id", id),
			logging.String("file", pic.Filename),
			logging.Error(err),
		)
	}

	e.logger.Info("picture deleted", logging.Int64("picture_id", id))
	return nil
}
