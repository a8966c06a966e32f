package site_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"marketingdigest/internal/domain"
	"marketingdigest/internal/site"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestPublisher(t *testing.T) (*site.Publisher, string, string) {
	t.Helper()

	root := t.TempDir()
	digestDir := filepath.Join(root, "marketing-digest")
	mainIndex := filepath.Join(root, "index.html")

	return site.NewPublisher(digestDir, mainIndex, discardLogger()), digestDir, mainIndex
}

func writeDigestFile(t *testing.T, dir string, name string) {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestWriteDigestPage(t *testing.T) {
	p, digestDir, _ := newTestPublisher(t)

	date := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

	path, err := p.WriteDigestPage(context.Background(), date, "<h2>Top novinky týdne</h2>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "2026-03-02.html" {
		t.Fatalf("unexpected file name: %s", path)
	}

	raw, err := os.ReadFile(filepath.Join(digestDir, "2026-03-02.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}

	page := string(raw)
	if !strings.Contains(page, "<h2>Top novinky týdne</h2>") {
		t.Fatalf("generated fragment is missing from page")
	}
	if !strings.Contains(page, "2. března 2026") {
		t.Fatalf("display date is missing from page")
	}
	if !strings.Contains(page, "<!DOCTYPE html>") {
		t.Fatalf("page is not a full document")
	}
}

func TestWriteDigestPageOverwritesSameDate(t *testing.T) {
	p, digestDir, _ := newTestPublisher(t)

	date := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	ctx := context.Background()

	if _, err := p.WriteDigestPage(ctx, date, "<p>first</p>"); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if _, err := p.WriteDigestPage(ctx, date, "<p>second</p>"); err != nil {
		t.Fatalf("second write: %v", err)
	}

	entries, err := os.ReadDir(digestDir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single file, got %d", len(entries))
	}

	raw, _ := os.ReadFile(filepath.Join(digestDir, "2026-03-02.html"))
	if !strings.Contains(string(raw), "<p>second</p>") {
		t.Fatalf("rerun did not overwrite the page")
	}
}

func TestRebuildArchiveEmptyDirectory(t *testing.T) {
	p, digestDir, _ := newTestPublisher(t)

	digests, err := p.RebuildArchive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(digests) != 0 {
		t.Fatalf("expected no digests, got %d", len(digests))
	}

	raw, err := os.ReadFile(filepath.Join(digestDir, "index.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if !strings.Contains(string(raw), "Zatím žádné digesty") {
		t.Fatalf("placeholder message is missing from empty archive")
	}
}

func TestRebuildArchiveListsAllDigestsDescending(t *testing.T) {
	p, digestDir, _ := newTestPublisher(t)

	writeDigestFile(t, digestDir, "2026-02-16.html")
	writeDigestFile(t, digestDir, "2026-03-02.html")
	writeDigestFile(t, digestDir, "2026-02-23.html")
	writeDigestFile(t, digestDir, "notes.html")
	writeDigestFile(t, digestDir, "2026-3-2.html")

	digests, err := p.RebuildArchive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"2026-03-02.html", "2026-02-23.html", "2026-02-16.html"}
	if len(digests) != len(want) {
		t.Fatalf("expected %d digests, got %d", len(want), len(digests))
	}
	for i, d := range digests {
		if d.Filename != want[i] {
			t.Fatalf("unexpected order at %d: got %q want %q", i, d.Filename, want[i])
		}
	}

	raw, err := os.ReadFile(filepath.Join(digestDir, "index.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	page := string(raw)

	for _, name := range want {
		if !strings.Contains(page, name) {
			t.Fatalf("archive page is missing %q", name)
		}
	}
	if strings.Contains(page, "notes.html") {
		t.Fatalf("archive page lists a non-digest file")
	}
	if !strings.Contains(page, "2. března 2026") {
		t.Fatalf("archive page is missing the display date")
	}
}

func TestPatchMainIndexReplacesMarkerBlock(t *testing.T) {
	p, _, mainIndex := newTestPublisher(t)

	original := "<html><body>\n" +
		site.StartMarker + "\nstale content\n" + site.EndMarker +
		"\n</body></html>"
	if err := os.WriteFile(mainIndex, []byte(original), 0o644); err != nil {
		t.Fatalf("write main index: %v", err)
	}

	digests := []domain.Digest{
		{Filename: "2026-03-02.html", Date: "2026-03-02", DisplayDate: "2. března 2026"},
		{Filename: "2026-02-23.html", Date: "2026-02-23", DisplayDate: "23. února 2026"},
		{Filename: "2026-02-16.html", Date: "2026-02-16", DisplayDate: "16. února 2026"},
		{Filename: "2026-02-09.html", Date: "2026-02-09", DisplayDate: "9. února 2026"},
	}

	if err := p.PatchMainIndex(context.Background(), digests); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(mainIndex)
	if err != nil {
		t.Fatalf("read main index: %v", err)
	}
	page := string(raw)

	if strings.Contains(page, "stale content") {
		t.Fatalf("old block content survived the patch")
	}
	for _, name := range []string{"2026-03-02.html", "2026-02-23.html", "2026-02-16.html"} {
		if !strings.Contains(page, "marketing-digest/"+name) {
			t.Fatalf("patched block is missing %q", name)
		}
	}
	if strings.Contains(page, "2026-02-09.html") {
		t.Fatalf("patched block lists more than the 3 most recent digests")
	}
	if !strings.Contains(page, site.StartMarker) || !strings.Contains(page, site.EndMarker) {
		t.Fatalf("markers were lost during the patch")
	}
}

func TestPatchMainIndexIsIdempotent(t *testing.T) {
	p, _, mainIndex := newTestPublisher(t)

	original := "<html>" + site.StartMarker + "x" + site.EndMarker + "</html>"
	if err := os.WriteFile(mainIndex, []byte(original), 0o644); err != nil {
		t.Fatalf("write main index: %v", err)
	}

	digests := []domain.Digest{
		{Filename: "2026-03-02.html", Date: "2026-03-02", DisplayDate: "2. března 2026"},
	}

	if err := p.PatchMainIndex(context.Background(), digests); err != nil {
		t.Fatalf("first patch: %v", err)
	}
	first, _ := os.ReadFile(mainIndex)

	if err := p.PatchMainIndex(context.Background(), digests); err != nil {
		t.Fatalf("second patch: %v", err)
	}
	second, _ := os.ReadFile(mainIndex)

	if string(first) != string(second) {
		t.Fatalf("patch is not idempotent:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestPatchMainIndexPlaceholderWithoutDigests(t *testing.T) {
	p, _, mainIndex := newTestPublisher(t)

	original := "<html>" + site.StartMarker + site.EndMarker + "</html>"
	if err := os.WriteFile(mainIndex, []byte(original), 0o644); err != nil {
		t.Fatalf("write main index: %v", err)
	}

	if err := p.PatchMainIndex(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, _ := os.ReadFile(mainIndex)
	if !strings.Contains(string(raw), "První digest vychází brzy") {
		t.Fatalf("placeholder block is missing")
	}
}

func TestPatchMainIndexWithoutMarkersLeavesFileUntouched(t *testing.T) {
	p, _, mainIndex := newTestPublisher(t)

	original := "<html><body>no markers here</body></html>"
	if err := os.WriteFile(mainIndex, []byte(original), 0o644); err != nil {
		t.Fatalf("write main index: %v", err)
	}

	if err := p.PatchMainIndex(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(mainIndex)
	if err != nil {
		t.Fatalf("read main index: %v", err)
	}
	if string(raw) != original {
		t.Fatalf("marker-less page was modified")
	}
}

func TestPatchMainIndexMissingFileIsSkipped(t *testing.T) {
	p, _, _ := newTestPublisher(t)

	if err := p.PatchMainIndex(context.Background(), nil); err != nil {
		t.Fatalf("expected missing main index to be a no-op, got %v", err)
	}
}

func TestFormatCzechDate(t *testing.T) {
	got := site.FormatCzechDate(time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC))
	if got != "7. září 2026" {
		t.Fatalf("unexpected display date: %q", got)
	}
}

func TestDisplayDateFallsBackToRawString(t *testing.T) {
	if got := site.DisplayDate("not-a-date"); got != "not-a-date" {
		t.Fatalf("unexpected fallback: %q", got)
	}
}
