package catalog

import "context"

// uploadPersistHook runs between artifact storage and the row insert. Tests
// replace it to inject failures at the point where compensation must kick in.
var uploadPersistHook = func(ctx context.Context, e *Engine) error { return nil }

// SetUploadPersistHookForTests swaps the upload persist hook and returns a
// restore function.
func SetUploadPersistHookForTests(hook func(ctx context.Context, e *Engine) error) func() {
	previous := uploadPersistHook
	uploadPersistHook = hook
	return func() { uploadPersistHook = previous }
}
