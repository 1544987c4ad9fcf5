package pages

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/iudanet/bakeclient/internal/client/view"
	"github.com/iudanet/bakeclient/internal/render"
)

// StaticAPI is the backend surface used by the static recipes page.
type StaticAPI interface {
	ListStaticFiles(ctx context.Context) ([]string, error)
	StaticFileURL(fileName string) string
	DownloadStaticFile(ctx context.Context, fileName string, w io.Writer) (int64, error)
}

const searchField = "term"

// StaticRecipes lists downloadable recipe files. The list is fetched once
// per activation; searching filters it locally.
type StaticRecipes struct {
	client StaticAPI
	doc    *view.Document
	nav    Navigator
	logger *slog.Logger
	files  []string
	mu     sync.Mutex
}

func NewStaticRecipes(client StaticAPI, doc *view.Document, nav Navigator, logger *slog.Logger) *StaticRecipes {
	return &StaticRecipes{client: client, doc: doc, nav: nav, logger: logger}
}

// Load fetches the file list and renders it through the current filter.
func (s *StaticRecipes) Load(ctx context.Context) {
	s.doc.ClearSection(view.SectionStaticStatus)

	files, err := s.client.ListStaticFiles(ctx)
	if err != nil {
		s.logger.Warn("failed to load static recipes", "error", err)
		s.doc.SetSection(view.SectionStaticStatus, render.Message(render.KindError, failureMessage(err, "Failed to load static recipe list")))
		return
	}

	s.mu.Lock()
	s.files = files
	s.mu.Unlock()

	s.renderList()
}

// Search sets the filter term and re-renders without a network call.
func (s *StaticRecipes) Search(term string) {
	s.doc.SetField(view.FormStaticSearch, searchField, term)
	s.renderList()
}

// Clear empties the filter term.
func (s *StaticRecipes) Clear() {
	s.Search("")
}

// Files returns the cached file list.
func (s *StaticRecipes) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.files))
	copy(out, s.files)
	return out
}

// Filter keeps the names containing term, ignoring case, in list order.
func Filter(files []string, term string) []string {
	term = strings.ToLower(term)
	out := make([]string, 0, len(files))
	for _, f := range files {
		if strings.Contains(strings.ToLower(f), term) {
			out = append(out, f)
		}
	}
	return out
}

func (s *StaticRecipes) renderList() {
	filtered := Filter(s.Files(), s.doc.Field(view.FormStaticSearch, searchField))

	entries := make([]render.StaticFile, len(filtered))
	for i, name := range filtered {
		entries[i] = render.StaticFile{Name: name, URL: s.client.StaticFileURL(name)}
	}
	s.doc.SetSection(view.SectionStaticList, render.StaticFiles(entries))
}

// Download saves fileName into dir and returns the written path.
func (s *StaticRecipes) Download(ctx context.Context, fileName, dir string) (string, error) {
	base := filepath.Base(fileName)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", fileName)
	}
	target := filepath.Join(dir, base)

	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", target, err)
	}

	n, err := s.client.DownloadStaticFile(ctx, fileName, out)
	closeErr := out.Close()
	if err != nil {
		_ = os.Remove(target)
		s.nav.ShowMessage(failureMessage(err, "Failed to download "+fileName), render.KindError)
		return "", fmt.Errorf("failed to download %s: %w", fileName, err)
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to write %s: %w", target, closeErr)
	}

	s.logger.Info("static recipe downloaded", "file", fileName, "path", target, "bytes", n)
	s.nav.ShowMessage(fmt.Sprintf("Downloaded %s to %s", fileName, target), render.KindSuccess)
	return target, nil
}
