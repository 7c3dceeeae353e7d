package store_test

import (
	"context"
	"errors"
	"testing"

	"picbox/internal/store"
	"picbox/internal/testsupport"
)

func TestCreateCategoryDerivesSlug(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	cat, err := st.CreateCategory(ctx, "Férias de Verão", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if cat.Slug != "ferias-de-verao" {
		t.Fatalf("slug = %q, want %q", cat.Slug, "ferias-de-verao")
	}
	if cat.ID == 0 {
		t.Fatal("expected a non-zero id")
	}
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if _, err := st.CreateCategory(ctx, "Holiday Photos", ""); err != nil {
		t.Fatalf("create category: %v", err)
	}
	_, err := st.CreateCategory(ctx, "HOLIDAY photos!", "")
	if !errors.Is(err, store.ErrDuplicateSlug) {
		t.Fatalf("err = %v, want ErrDuplicateSlug", err)
	}
}

func TestCreateCategoryEmptySlug(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	_, err := st.CreateCategory(context.Background(), "!!!", "")
	if !errors.Is(err, store.ErrEmptySlug) {
		t.Fatalf("err = %v, want ErrEmptySlug", err)
	}
}

func TestResolveCategory(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	created, err := st.CreateCategory(ctx, "Summer Trip", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	byName, err := st.ResolveCategory(ctx, "Summer Trip")
	if err != nil {
		t.Fatalf("resolve by name: %v", err)
	}
	if byName == nil || byName.ID != created.ID {
		t.Fatalf("resolve by name = %+v, want id %d", byName, created.ID)
	}

	bySlug, err := st.ResolveCategory(ctx, "summer-trip")
	if err != nil {
		t.Fatalf("resolve by slug: %v", err)
	}
	if bySlug == nil || bySlug.ID != created.ID {
		t.Fatalf("resolve by slug = %+v, want id %d", bySlug, created.ID)
	}

	missing, err := st.ResolveCategory(ctx, "nope")
	if err != nil {
		t.Fatalf("resolve missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown category, got %+v", missing)
	}
}

func TestResolveCategoryAmbiguousName(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if _, err := st.CreateCategory(ctx, "Pets", "pets"); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := st.CreateCategory(ctx, "Pets", "pets-2"); err != nil {
		t.Fatalf("create second: %v", err)
	}

	_, err := st.ResolveCategory(ctx, "Pets")
	if !errors.Is(err, store.ErrAmbiguousName) {
		t.Fatalf("err = %v, want ErrAmbiguousName", err)
	}
}

func TestDeleteCategoryRefusedWhileReferenced(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	cat, err := st.CreateCategory(ctx, "In Use", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	pic, err := st.CreatePicture(ctx, store.NewPicture{
		CategoryID: &cat.ID,
		Filename:   "a.jpg",
		Thumbnail:  "a.thumb.jpg",
	})
	if err != nil {
		t.Fatalf("create picture: %v", err)
	}

	_, err = st.DeleteCategory(ctx, cat.ID)
	if !errors.Is(err, store.ErrCategoryInUse) {
		t.Fatalf("err = %v, want ErrCategoryInUse", err)
	}

	removed, err := st.DeletePicture(ctx, pic.ID)
	if err != nil || !removed {
		t.Fatalf("delete picture: removed=%v err=%v", removed, err)
	}
	removed, err = st.DeleteCategory(ctx, cat.ID)
	if err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if !removed {
		t.Fatal("expected category to be removed once unreferenced")
	}
}

func TestUpsertKeywordsDeduplicates(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	first, err := st.UpsertKeywords(ctx, []string{"Beach", "beach!", "Sunset"})
	if err != nil {
		t.Fatalf("upsert keywords: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("got %d keywords, want 2", len(first))
	}

	second, err := st.UpsertKeywords(ctx, []string{"BEACH"})
	if err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if len(second) != 1 || second[0].ID != first[0].ID {
		t.Fatalf("re-upsert = %+v, want existing id %d", second, first[0].ID)
	}
}

func TestPictureRoundTrip(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	cat, err := st.CreateCategory(ctx, "Trips", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	keywords, err := st.UpsertKeywords(ctx, []string{"beach", "sunset"})
	if err != nil {
		t.Fatalf("upsert keywords: %v", err)
	}
	ids := []int64{keywords[0].ID, keywords[1].ID}

	episode := int64(3)
	created, err := st.CreatePicture(ctx, store.NewPicture{
		CategoryID:       &cat.ID,
		OwnerID:          "alice",
		Filename:         "abc.jpg",
		OriginalFilename: "holiday.jpg",
		Thumbnail:        "abc.thumb.jpg",
		Episode:          &episode,
		KeywordIDs:       ids,
	})
	if err != nil {
		t.Fatalf("create picture: %v", err)
	}

	got, err := st.GetPicture(ctx, created.ID)
	if err != nil {
		t.Fatalf("get picture: %v", err)
	}
	if got == nil {
		t.Fatal("expected picture, got nil")
	}
	if got.OwnerID != "alice" || got.OriginalFilename != "holiday.jpg" {
		t.Fatalf("unexpected fields: %+v", got)
	}
	if got.Episode == nil || *got.Episode != 3 {
		t.Fatalf("episode = %v, want 3", got.Episode)
	}
	if len(got.Keywords) != 2 {
		t.Fatalf("got %d keywords, want 2", len(got.Keywords))
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
}

func TestGetPictureMiss(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	pic, err := st.GetPicture(context.Background(), 42)
	if err != nil {
		t.Fatalf("get picture: %v", err)
	}
	if pic != nil {
		t.Fatalf("expected nil on miss, got %+v", pic)
	}
}

func TestListPicturesNewestFirst(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := st.CreatePicture(ctx, store.NewPicture{
			Filename:  "f.jpg",
			Thumbnail: "f.thumb.jpg",
		}); err != nil {
			t.Fatalf("create picture %d: %v", i, err)
		}
	}

	page, err := st.ListPictures(ctx, store.Filter{}, 3, 0)
	if err != nil {
		t.Fatalf("list pictures: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("got %d pictures, want 3", len(page))
	}
	for i := 1; i < len(page); i++ {
		if page[i].ID >= page[i-1].ID {
			t.Fatalf("expected descending ids, got %d then %d", page[i-1].ID, page[i].ID)
		}
	}

	rest, err := st.ListPictures(ctx, store.Filter{}, 3, 3)
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(rest) != 2 {
		t.Fatalf("got %d pictures on second page, want 2", len(rest))
	}
}

func TestListPicturesFiltered(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	cat, err := st.CreateCategory(ctx, "Show", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	episodes := []int64{1, 1, 2}
	for _, ep := range episodes {
		ep := ep
		if _, err := st.CreatePicture(ctx, store.NewPicture{
			CategoryID: &cat.ID,
			Filename:   "f.jpg",
			Thumbnail:  "f.thumb.jpg",
			Episode:    &ep,
		}); err != nil {
			t.Fatalf("create picture: %v", err)
		}
	}
	if _, err := st.CreatePicture(ctx, store.NewPicture{
		Filename:  "loose.jpg",
		Thumbnail: "loose.thumb.jpg",
	}); err != nil {
		t.Fatalf("create uncategorized: %v", err)
	}

	ep := int64(1)
	count, err := st.CountPictures(ctx, store.Filter{CategoryID: &cat.ID, Episode: &ep})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	all, err := st.CountPictures(ctx, store.Filter{})
	if err != nil {
		t.Fatalf("count all: %v", err)
	}
	if all != 4 {
		t.Fatalf("count all = %d, want 4", all)
	}
}

func TestRandomPicture(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	empty, err := st.RandomPicture(ctx, store.Filter{})
	if err != nil {
		t.Fatalf("random on empty: %v", err)
	}
	if empty != nil {
		t.Fatalf("expected nil on empty catalog, got %+v", empty)
	}

	known := make(map[int64]struct{})
	for i := 0; i < 3; i++ {
		pic, err := st.CreatePicture(ctx, store.NewPicture{
			Filename:  "f.jpg",
			Thumbnail: "f.thumb.jpg",
		})
		if err != nil {
			t.Fatalf("create picture: %v", err)
		}
		known[pic.ID] = struct{}{}
	}

	for i := 0; i < 10; i++ {
		pic, err := st.RandomPicture(ctx, store.Filter{})
		if err != nil {
			t.Fatalf("random: %v", err)
		}
		if pic == nil {
			t.Fatal("expected a picture")
		}
		if _, ok := known[pic.ID]; !ok {
			t.Fatalf("random returned unknown id %d", pic.ID)
		}
	}
}

func TestDeletePictureCascadesKeywordLinks(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	keywords, err := st.UpsertKeywords(ctx, []string{"tag"})
	if err != nil {
		t.Fatalf("upsert keywords: %v", err)
	}
	pic, err := st.CreatePicture(ctx, store.NewPicture{
		Filename:   "f.jpg",
		Thumbnail:  "f.thumb.jpg",
		KeywordIDs: []int64{keywords[0].ID},
	})
	if err != nil {
		t.Fatalf("create picture: %v", err)
	}

	removed, err := st.DeletePicture(ctx, pic.ID)
	if err != nil {
		t.Fatalf("delete picture: %v", err)
	}
	if !removed {
		t.Fatal("expected a row to be removed")
	}

	// keyword survives, the link does not
	remaining, err := st.ListKeywords(ctx)
	if err != nil {
		t.Fatalf("list keywords: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("got %d keywords, want 1", len(remaining))
	}

	gone, err := st.GetPicture(ctx, pic.ID)
	if err != nil {
		t.Fatalf("get deleted picture: %v", err)
	}
	if gone != nil {
		t.Fatalf("expected nil after delete, got %+v", gone)
	}
}

func TestStats(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	cat, err := st.CreateCategory(ctx, "Stats", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := st.UpsertKeywords(ctx, []string{"one", "two"}); err != nil {
		t.Fatalf("upsert keywords: %v", err)
	}
	if _, err := st.CreatePicture(ctx, store.NewPicture{
		CategoryID: &cat.ID,
		Filename:   "a.jpg",
		Thumbnail:  "a.thumb.jpg",
	}); err != nil {
		t.Fatalf("create categorized: %v", err)
	}
	if _, err := st.CreatePicture(ctx, store.NewPicture{
		Filename:  "b.jpg",
		Thumbnail: "b.thumb.jpg",
	}); err != nil {
		t.Fatalf("create uncategorized: %v", err)
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := store.Stats{Pictures: 2, Categories: 1, Keywords: 2, Uncategorized: 1}
	if *stats != want {
		t.Fatalf("stats = %+v, want %+v", *stats, want)
	}
}

func TestPicturesAfterWalksAscending(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := st.CreatePicture(ctx, store.NewPicture{
			Filename:  "f.jpg",
			Thumbnail: "f.thumb.jpg",
		}); err != nil {
			t.Fatalf("create picture: %v", err)
		}
	}

	var (
		cursor int64
		total  int
	)
	for {
		batch, err := st.PicturesAfter(ctx, cursor, 2)
		if err != nil {
			t.Fatalf("pictures after: %v", err)
		}
		if len(batch) == 0 {
			break
		}
		for _, pic := range batch {
			if pic.ID <= cursor {
				t.Fatalf("non-ascending id %d after cursor %d", pic.ID, cursor)
			}
			cursor = pic.ID
			total++
		}
	}
	if total != 5 {
		t.Fatalf("walked %d pictures, want 5", total)
	}
}
