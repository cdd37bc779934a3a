package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/rpupo63/portfolio-studio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrNothingToImport = errors.New("nothing to import")
	ErrNoMediaFound    = errors.New("no media found on page")
)

// ParseError reports a gallery page that could not be fetched or read.
// Fallback is what the caller may import instead: the page address as a
// single direct reference.
type ParseError struct {
	Source   string
	Fallback []string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("import from %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ImportRequest names the media to import: either direct references or a
// gallery page to read them from.
type ImportRequest struct {
	Refs       []string
	GalleryURL string
}

// Importer resolves bulk-import requests into media references.
type Importer struct {
	client   *resty.Client
	maxItems int
	logger   zerolog.Logger
}

const userAgent = "Mozilla/5.0 (compatible; portfolio-studio/1.0)"

// NewImporter returns an importer whose page fetches give up after timeout.
func NewImporter(timeout time.Duration) *Importer {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetRetryCount(1)

	return &Importer{
		client:   client,
		maxItems: 100,
		logger:   log.With().Str("component", "importer").Logger(),
	}
}

// Resolve returns the references to import, in order.
func (i *Importer) Resolve(ctx context.Context, req ImportRequest) ([]string, error) {
	if gallery := strings.TrimSpace(req.GalleryURL); gallery != "" {
		refs, err := i.FetchGallery(ctx, gallery)
		if err != nil {
			i.logger.Warn().Err(err).Str("url", gallery).Msg("gallery import failed")
			return nil, &ParseError{Source: gallery, Fallback: []string{gallery}, Err: err}
		}
		return refs, nil
	}

	refs := make([]string, 0, len(req.Refs))
	for _, ref := range req.Refs {
		for _, part := range strings.FieldsFunc(ref, func(r rune) bool { return r == '\n' || r == ',' }) {
			if part = strings.TrimSpace(part); part != "" {
				refs = append(refs, part)
			}
		}
	}
	if len(refs) == 0 {
		return nil, ErrNothingToImport
	}
	return refs, nil
}

// FetchGallery downloads pageURL and collects the image and video sources
// it references, resolved to absolute URLs and de-duplicated.
func (i *Importer) FetchGallery(ctx context.Context, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, fmt.Errorf("invalid gallery url %q", pageURL)
	}

	resp, err := i.client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch page: status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	seen := make(map[string]struct{})
	var refs []string
	add := func(raw string) {
		if len(refs) >= i.maxItems {
			return
		}
		ref, ok := resolveRef(base, raw)
		if !ok {
			return
		}
		if _, dup := seen[ref]; dup {
			return
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}

	doc.Find(`meta[property="og:image"]`).Each(func(_ int, sel *goquery.Selection) {
		add(sel.AttrOr("content", ""))
	})
	doc.Find("img, video, video source, picture source").Each(func(_ int, sel *goquery.Selection) {
		for _, attr := range []string{"data-src", "src"} {
			if v, ok := sel.Attr(attr); ok && v != "" {
				add(v)
				return
			}
		}
		if srcset, ok := sel.Attr("srcset"); ok {
			add(largestFromSrcset(srcset))
		}
	})

	if len(refs) == 0 {
		return nil, ErrNoMediaFound
	}
	return refs, nil
}

func resolveRef(base *url.URL, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "data:") {
		return "", false
	}
	u, err := base.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	ref := u.String()
	if models.IsPlaceholder(ref) {
		return "", false
	}
	return ref, true
}

// largestFromSrcset picks the last candidate, which pages list largest last.
func largestFromSrcset(srcset string) string {
	candidates := strings.Split(srcset, ",")
	last := strings.TrimSpace(candidates[len(candidates)-1])
	if fields := strings.Fields(last); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
