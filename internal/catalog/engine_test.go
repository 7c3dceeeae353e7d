package catalog_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	_ "image/jpeg"
	_ "image/png"

	"picbox/internal/catalog"
	"picbox/internal/testsupport"
)

func TestUploadStoresArtifactsAndRow(t *testing.T) {
	eng, cfg := testsupport.NewEngine(t, testsupport.WithThumbnailMax(200, 200))
	ctx := context.Background()

	if _, err := eng.AddCategory(ctx, "Holidays", ""); err != nil {
		t.Fatalf("add category: %v", err)
	}

	episode := int64(2)
	pic, err := eng.Upload(ctx, catalog.UploadRequest{
		Source:   bytes.NewReader(testsupport.JPEG(t, 800, 600)),
		Filename: "beach day.jpg",
		Category: "Holidays",
		Keywords: []string{"beach", "sunset"},
		OwnerID:  "alice",
		Episode:  &episode,
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if pic.OriginalFilename != "beach day.jpg" {
		t.Fatalf("original filename = %q", pic.OriginalFilename)
	}
	if pic.Filename == "beach day.jpg" || pic.Filename == "" {
		t.Fatalf("stored filename must be generated, got %q", pic.Filename)
	}
	if len(pic.Keywords) != 2 {
		t.Fatalf("got %d keywords, want 2", len(pic.Keywords))
	}

	original := filepath.Join(cfg.Paths.StoreDir, pic.Filename)
	if _, err := os.Stat(original); err != nil {
		t.Fatalf("original not stored: %v", err)
	}

	thumbFile, err := os.Open(filepath.Join(cfg.Paths.StoreDir, pic.Thumbnail))
	if err != nil {
		t.Fatalf("thumbnail not stored: %v", err)
	}
	defer thumbFile.Close()
	thumbCfg, _, err := image.DecodeConfig(thumbFile)
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if thumbCfg.Width != 200 || thumbCfg.Height != 150 {
		t.Fatalf("thumbnail = %dx%d, want 200x150", thumbCfg.Width, thumbCfg.Height)
	}
}

func TestUploadSameFileTwiceGetsDistinctArtifacts(t *testing.T) {
	eng, _ := testsupport.NewEngine(t)
	ctx := context.Background()

	data := testsupport.PNG(t, 100, 100)
	first, err := eng.Upload(ctx, catalog.UploadRequest{
		Source:   bytes.NewReader(data),
		Filename: "same.png",
	})
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	second, err := eng.Upload(ctx, catalog.UploadRequest{
		Source:   bytes.NewReader(data),
		Filename: "same.png",
	})
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if first.Filename == second.Filename {
		t.Fatalf("both uploads stored as %q", first.Filename)
	}
}

func TestUploadRejectsBadExtension(t *testing.T) {
	eng, cfg := testsupport.NewEngine(t)
	ctx := context.Background()

	_, err := eng.Upload(ctx, catalog.UploadRequest{
		Source:   bytes.NewReader(testsupport.JPEG(t, 10, 10)),
		Filename: "notes.txt",
	})
	if !errors.Is(err, catalog.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	entries, readErr := os.ReadDir(cfg.Paths.StoreDir)
	if readErr != nil {
		t.Fatalf("read store dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("rejected upload left %d file(s) behind", len(entries))
	}
}

func TestUploadUndecodableStreamIsStorageError(t *testing.T) {
	eng, cfg := testsupport.NewEngine(t)

	_, err := eng.Upload(context.Background(), catalog.UploadRequest{
		Source:   bytes.NewReader([]byte("not an image at all")),
		Filename: "fake.jpg",
	})
	if !errors.Is(err, catalog.ErrStorage) {
		t.Fatalf("err = %v, want ErrStorage", err)
	}

	entries, readErr := os.ReadDir(cfg.Paths.StoreDir)
	if readErr != nil {
		t.Fatalf("read store dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("failed upload left %d file(s) behind", len(entries))
	}
}

func TestUploadUnknownCategoryRejectedByDefault(t *testing.T) {
	eng, _ := testsupport.NewEngine(t)

	_, err := eng.Upload(context.Background(), catalog.UploadRequest{
		Source:   bytes.NewReader(testsupport.JPEG(t, 10, 10)),
		Filename: "x.jpg",
		Category: "does-not-exist",
	})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUploadUnknownCategoryStoredUncategorizedWhenConfigured(t *testing.T) {
	eng, _ := testsupport.NewEngine(t, testsupport.WithMissingCategoryPolicy("uncategorized"))

	pic, err := eng.Upload(context.Background(), catalog.UploadRequest{
		Source:   bytes.NewReader(testsupport.JPEG(t, 10, 10)),
		Filename: "x.jpg",
		Category: "does-not-exist",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if pic.CategoryID != nil {
		t.Fatalf("expected uncategorized picture, got category %d", *pic.CategoryID)
	}
}

func TestUploadRowFailureRemovesArtifacts(t *testing.T) {
	eng, cfg := testsupport.NewEngine(t)
	ctx := context.Background()

	restore := catalog.SetUploadPersistHookForTests(func(context.Context, *catalog.Engine) error {
		return errors.New("injected persist failure")
	})
	defer restore()

	_, err := eng.Upload(ctx, catalog.UploadRequest{
		Source:   bytes.NewReader(testsupport.JPEG(t, 50, 50)),
		Filename: "doomed.jpg",
	})
	if !errors.Is(err, catalog.ErrStorage) {
		t.Fatalf("err = %v, want ErrStorage", err)
	}

	entries, readErr := os.ReadDir(cfg.Paths.StoreDir)
	if readErr != nil {
		t.Fatalf("read store dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("aborted upload left %d file(s) behind", len(entries))
	}
}

func TestDeleteRemovesRowAndArtifacts(t *testing.T) {
	eng, cfg := testsupport.NewEngine(t)
	ctx := context.Background()

	pic, err := eng.Upload(ctx, catalog.UploadRequest{
		Source:   bytes.NewReader(testsupport.JPEG(t, 50, 50)),
		Filename: "gone.jpg",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := eng.Delete(ctx, pic.ID, ""); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := eng.GetPicture(ctx, pic.ID); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("get after delete: err = %v, want ErrNotFound", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.StoreDir, pic.Filename)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("original still present after delete: %v", err)
	}
}

func TestDeleteToleratesArtifactFailure(t *testing.T) {
	eng, cfg := testsupport.NewEngine(t)
	ctx := context.Background()

	pic, err := eng.Upload(ctx, catalog.UploadRequest{
		Source:   bytes.NewReader(testsupport.JPEG(t, 50, 50)),
		Filename: "stuck.jpg",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	// Replace the original with a non-empty directory so os.Remove fails.
	original := filepath.Join(cfg.Paths.StoreDir, pic.Filename)
	if err := os.Remove(original); err != nil {
		t.Fatalf("remove original: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(original, "inner"), 0o755); err != nil {
		t.Fatalf("make blocking dir: %v", err)
	}

	if err := eng.Delete(ctx, pic.ID, ""); err != nil {
		t.Fatalf("delete should tolerate artifact failure, got %v", err)
	}
	if _, err := eng.GetPicture(ctx, pic.ID); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("row must be gone even when artifacts remain, err = %v", err)
	}
}

func TestDeleteEnforcesOwner(t *testing.T) {
	eng, _ := testsupport.NewEngine(t)
	ctx := context.Background()

	pic, err := eng.Upload(ctx, catalog.UploadRequest{
		Source:   bytes.NewReader(testsupport.JPEG(t, 20, 20)),
		Filename: "owned.jpg",
		OwnerID:  "alice",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := eng.Delete(ctx, pic.ID, "bob"); !errors.Is(err, catalog.ErrValidation) {
		t.Fatalf("wrong owner: err = %v, want ErrValidation", err)
	}
	if err := eng.Delete(ctx, pic.ID, "alice"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestListPagination(t *testing.T) {
	eng, _ := testsupport.NewEngine(t)
	ctx := context.Background()

	data := testsupport.JPEG(t, 20, 20)
	for i := 0; i < 25; i++ {
		if _, err := eng.Upload(ctx, catalog.UploadRequest{
			Source:   bytes.NewReader(data),
			Filename: "p.jpg",
		}); err != nil {
			t.Fatalf("upload %d: %v", i, err)
		}
	}

	seen := make(map[int64]struct{})
	for page := 1; page <= 3; page++ {
		result, err := eng.List(ctx, catalog.ListRequest{Page: page, PageSize: 10})
		if err != nil {
			t.Fatalf("list page %d: %v", page, err)
		}
		if result.Total != 25 || result.TotalPages != 3 {
			t.Fatalf("page %d: total=%d totalPages=%d", page, result.Total, result.TotalPages)
		}
		wantLen := 10
		if page == 3 {
			wantLen = 5
		}
		if len(result.Pictures) != wantLen {
			t.Fatalf("page %d has %d pictures, want %d", page, len(result.Pictures), wantLen)
		}
		for _, pic := range result.Pictures {
			if _, dup := seen[pic.ID]; dup {
				t.Fatalf("picture %d appeared on more than one page", pic.ID)
			}
			seen[pic.ID] = struct{}{}
		}
	}
	if len(seen) != 25 {
		t.Fatalf("pages covered %d pictures, want 25", len(seen))
	}

	if _, err := eng.List(ctx, catalog.ListRequest{Page: 5, PageSize: 10}); !errors.Is(err, catalog.ErrPageOutOfRange) {
		t.Fatalf("page past end: err = %v, want ErrPageOutOfRange", err)
	}
}

func TestListEmptyFirstPageSucceeds(t *testing.T) {
	eng, _ := testsupport.NewEngine(t)

	result, err := eng.List(context.Background(), catalog.ListRequest{Page: 1})
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(result.Pictures) != 0 || result.Total != 0 || result.TotalPages != 0 {
		t.Fatalf("unexpected result for empty catalog: %+v", result)
	}
}

func TestListEpisodeRequiresCategory(t *testing.T) {
	eng, _ := testsupport.NewEngine(t)

	episode := int64(1)
	_, err := eng.List(context.Background(), catalog.ListRequest{Episode: &episode})
	if !errors.Is(err, catalog.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestRandom(t *testing.T) {
	eng, _ := testsupport.NewEngine(t)
	ctx := context.Background()

	if _, err := eng.Random(ctx, "", nil); !errors.Is(err, catalog.ErrEmptyCatalog) {
		t.Fatalf("empty catalog: err = %v, want ErrEmptyCatalog", err)
	}

	known := make(map[int64]struct{})
	data := testsupport.JPEG(t, 20, 20)
	for i := 0; i < 3; i++ {
		pic, err := eng.Upload(ctx, catalog.UploadRequest{
			Source:   bytes.NewReader(data),
			Filename: "r.jpg",
		})
		if err != nil {
			t.Fatalf("upload: %v", err)
		}
		known[pic.ID] = struct{}{}
	}

	for i := 0; i < 10; i++ {
		pic, err := eng.Random(ctx, "", nil)
		if err != nil {
			t.Fatalf("random: %v", err)
		}
		if _, ok := known[pic.ID]; !ok {
			t.Fatalf("random returned unknown picture %d", pic.ID)
		}
	}
}

func TestRemoveCategoryRefusedWhileReferenced(t *testing.T) {
	eng, _ := testsupport.NewEngine(t)
	ctx := context.Background()

	if _, err := eng.AddCategory(ctx, "Busy", ""); err != nil {
		t.Fatalf("add category: %v", err)
	}
	pic, err := eng.Upload(ctx, catalog.UploadRequest{
		Source:   bytes.NewReader(testsupport.JPEG(t, 20, 20)),
		Filename: "in-category.jpg",
		Category: "Busy",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := eng.RemoveCategory(ctx, "Busy"); !errors.Is(err, catalog.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}

	if err := eng.Delete(ctx, pic.ID, ""); err != nil {
		t.Fatalf("delete picture: %v", err)
	}
	if err := eng.RemoveCategory(ctx, "Busy"); err != nil {
		t.Fatalf("remove after unreference: %v", err)
	}
}

func TestAddCategoryDuplicateSlugConflicts(t *testing.T) {
	eng, _ := testsupport.NewEngine(t)
	ctx := context.Background()

	if _, err := eng.AddCategory(ctx, "Road Trips", ""); err != nil {
		t.Fatalf("add category: %v", err)
	}
	_, err := eng.AddCategory(ctx, "road TRIPS!", "")
	if !errors.Is(err, catalog.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestRegenerateThumbnails(t *testing.T) {
	eng, cfg := testsupport.NewEngine(t, testsupport.WithThumbnailMax(100, 100))
	ctx := context.Background()

	pic, err := eng.Upload(ctx, catalog.UploadRequest{
		Source:   bytes.NewReader(testsupport.JPEG(t, 400, 400)),
		Filename: "regen.jpg",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	// Drop the thumbnail; regeneration must bring it back.
	thumbPath := filepath.Join(cfg.Paths.StoreDir, pic.Thumbnail)
	if err := os.Remove(thumbPath); err != nil {
		t.Fatalf("remove thumbnail: %v", err)
	}

	report, err := eng.RegenerateThumbnails(ctx)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if report.Regenerated != 1 || report.Skipped != 0 {
		t.Fatalf("report = %+v", report)
	}
	if _, err := os.Stat(thumbPath); err != nil {
		t.Fatalf("thumbnail not regenerated: %v", err)
	}
}

func TestRegenerateSkipsMissingOriginals(t *testing.T) {
	eng, cfg := testsupport.NewEngine(t)
	ctx := context.Background()

	pic, err := eng.Upload(ctx, catalog.UploadRequest{
		Source:   bytes.NewReader(testsupport.JPEG(t, 50, 50)),
		Filename: "lost.jpg",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := os.Remove(filepath.Join(cfg.Paths.StoreDir, pic.Filename)); err != nil {
		t.Fatalf("remove original: %v", err)
	}

	report, err := eng.RegenerateThumbnails(ctx)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if report.Regenerated != 0 || report.Skipped != 1 {
		t.Fatalf("report = %+v", report)
	}
}

func TestSweepOrphans(t *testing.T) {
	eng, cfg := testsupport.NewEngine(t)
	ctx := context.Background()

	pic, err := eng.Upload(ctx, catalog.UploadRequest{
		Source:   bytes.NewReader(testsupport.JPEG(t, 50, 50)),
		Filename: "kept.jpg",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	orphan := filepath.Join(cfg.Paths.StoreDir, "abandoned.jpg")
	if err := os.WriteFile(orphan, []byte("stray"), 0o644); err != nil {
		t.Fatalf("write orphan: %v", err)
	}

	report, err := eng.SweepOrphans(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(report.RemovedFiles) != 1 || report.RemovedFiles[0] != "abandoned.jpg" {
		t.Fatalf("removed = %v, want [abandoned.jpg]", report.RemovedFiles)
	}
	if len(report.DanglingRows) != 0 {
		t.Fatalf("dangling = %v, want none", report.DanglingRows)
	}
	if _, err := os.Stat(orphan); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("orphan still present: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.StoreDir, pic.Filename)); err != nil {
		t.Fatalf("referenced file removed by sweep: %v", err)
	}
}

func TestSweepReportsDanglingRows(t *testing.T) {
	eng, cfg := testsupport.NewEngine(t)
	ctx := context.Background()

	pic, err := eng.Upload(ctx, catalog.UploadRequest{
		Source:   bytes.NewReader(testsupport.JPEG(t, 50, 50)),
		Filename: "dangling.jpg",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := os.Remove(filepath.Join(cfg.Paths.StoreDir, pic.Filename)); err != nil {
		t.Fatalf("remove original: %v", err)
	}

	report, err := eng.SweepOrphans(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(report.DanglingRows) != 1 || report.DanglingRows[0] != pic.ID {
		t.Fatalf("dangling = %v, want [%d]", report.DanglingRows, pic.ID)
	}
}
