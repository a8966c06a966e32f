package site

import (
	"bytes"
	"cmp"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"marketingdigest/internal/domain"
)

const (
	dateLayout = "2006-01-02"

	StartMarker = "<!-- DIGEST_LIST_START -->"
	EndMarker   = "<!-- DIGEST_LIST_END -->"

	recentDigestsOnMainIndex = 3

	dirPerm  = 0o755
	filePerm = 0o644
)

var digestFilenameRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.html$`)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

// Publisher writes the dated digest pages, rebuilds the archive index and
// patches the marker block of the external main page. All three operations
// are idempotent.
type Publisher struct {
	digestDir     string
	mainIndexPath string
	log           *slog.Logger
}

func NewPublisher(digestDir string, mainIndexPath string, log *slog.Logger) *Publisher {
	return &Publisher{
		digestDir:     digestDir,
		mainIndexPath: mainIndexPath,
		log:           log,
	}
}

type digestPageData struct {
	DisplayDate string
	SharedCSS   template.CSS
	// Body is the generated fragment; it is trusted output and inserted
	// without further escaping.
	Body template.HTML
}

type archivePageData struct {
	SharedCSS template.CSS
	Digests   []domain.Digest
}

// WriteDigestPage wraps the generated fragment in the full page template and
// writes it to <digestDir>/<date>.html, overwriting any existing file for
// that date.
func (p *Publisher) WriteDigestPage(
	ctx context.Context,
	date time.Time,
	fragment string,
) (string, error) {
	if err := os.MkdirAll(p.digestDir, dirPerm); err != nil {
		return "", fmt.Errorf("create digest dir: %w", err)
	}

	data := digestPageData{
		DisplayDate: FormatCzechDate(date),
		SharedCSS:   template.CSS(sharedCSS),
		Body:        template.HTML(fragment),
	}

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "digest.html.tmpl", data); err != nil {
		return "", fmt.Errorf("render digest page: %w", err)
	}

	path := filepath.Join(p.digestDir, date.Format(dateLayout)+".html")
	if err := os.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return "", fmt.Errorf("write digest page: %w", err)
	}

	p.log.InfoContext(ctx, "Digest page is written",
		"path", path,
		"displayDate", data.DisplayDate)

	return path, nil
}

// RebuildArchive scans the digest directory for dated pages, rewrites the
// archive index and returns the digests in descending date order.
func (p *Publisher) RebuildArchive(ctx context.Context) ([]domain.Digest, error) {
	if err := os.MkdirAll(p.digestDir, dirPerm); err != nil {
		return nil, fmt.Errorf("create digest dir: %w", err)
	}

	entries, err := os.ReadDir(p.digestDir)
	if err != nil {
		return nil, fmt.Errorf("read digest dir: %w", err)
	}

	var digests []domain.Digest
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !digestFilenameRe.MatchString(name) {
			continue
		}

		dateStr := strings.TrimSuffix(name, ".html")
		digests = append(digests, domain.Digest{
			Filename:    name,
			Date:        dateStr,
			DisplayDate: DisplayDate(dateStr),
		})
	}

	slices.SortFunc(digests, func(a, b domain.Digest) int {
		return cmp.Compare(b.Filename, a.Filename)
	})

	data := archivePageData{
		SharedCSS: template.CSS(sharedCSS),
		Digests:   digests,
	}

	var buf bytes.Buffer
	if err = pageTemplates.ExecuteTemplate(&buf, "archive.html.tmpl", data); err != nil {
		return nil, fmt.Errorf("render archive page: %w", err)
	}

	path := filepath.Join(p.digestDir, "index.html")
	if err = os.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return nil, fmt.Errorf("write archive page: %w", err)
	}

	p.log.InfoContext(ctx, "Archive index is rebuilt",
		"path", path,
		"digestCount", len(digests))

	return digests, nil
}

// PatchMainIndex replaces the marker-delimited block of the external main
// page with links to the most recent digests. A missing page or missing
// markers make the patch a logged no-op; the page is never otherwise touched.
func (p *Publisher) PatchMainIndex(ctx context.Context, digests []domain.Digest) error {
	raw, err := os.ReadFile(p.mainIndexPath)
	if errors.Is(err, fs.ErrNotExist) {
		p.log.WarnContext(ctx, "Main index is missing so patch is skipped",
			"path", p.mainIndexPath)

		return nil
	}
	if err != nil {
		return fmt.Errorf("read main index: %w", err)
	}

	content := string(raw)

	startIdx := strings.Index(content, StartMarker)
	endIdx := strings.Index(content, EndMarker)
	if startIdx == -1 || endIdx == -1 {
		p.log.WarnContext(ctx, "Digest markers are missing so patch is skipped",
			"path", p.mainIndexPath,
			"startMarkerFound", startIdx != -1,
			"endMarkerFound", endIdx != -1)

		return nil
	}

	recent := digests
	if len(recent) > recentDigestsOnMainIndex {
		recent = recent[:recentDigestsOnMainIndex]
	}

	block := p.buildMarkerBlock(recent)

	patched := content[:startIdx] + block + content[endIdx+len(EndMarker):]
	if err = os.WriteFile(p.mainIndexPath, []byte(patched), filePerm); err != nil {
		return fmt.Errorf("write main index: %w", err)
	}

	p.log.InfoContext(ctx, "Main index is patched",
		"path", p.mainIndexPath,
		"recentCount", len(recent))

	return nil
}

func (p *Publisher) buildMarkerBlock(recent []domain.Digest) string {
	linkPrefix := filepath.Base(p.digestDir)

	var b strings.Builder
	b.WriteString(StartMarker)
	b.WriteString("\n      <div class=\"digest-list\">\n")

	if len(recent) == 0 {
		b.WriteString("        <p class=\"digest-coming-soon\">První digest vychází brzy — sleduj a nezmeškej.</p>\n")
	}

	for _, d := range recent {
		fmt.Fprintf(&b, "        <a href=%q class=\"digest-item\">\n", linkPrefix+"/"+d.Filename)
		fmt.Fprintf(&b, "          <span class=\"digest-date\">%s</span>\n", d.DisplayDate)
		b.WriteString("          <span class=\"digest-title\">Marketing Digest</span>\n")
		b.WriteString("          <span class=\"digest-arrow\">→</span>\n")
		b.WriteString("        </a>\n")
	}

	b.WriteString("      </div>\n      ")
	b.WriteString(EndMarker)

	return b.String()
}
