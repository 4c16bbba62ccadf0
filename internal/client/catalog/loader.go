package catalog

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
	"github.com/dmitrijs2005/gastroglobe/internal/common"
	"github.com/dmitrijs2005/gastroglobe/internal/logging"
	"github.com/goccy/go-json"
)

//go:embed demo/*.json
var demoFS embed.FS

// Result is the outcome of one catalog load. Items is never nil; when
// Fallback is set it holds the demo dataset and Err the cause.
type Result[T any] struct {
	Items    []T
	Source   string
	Fallback bool
	Err      error
}

// Loader reads catalogs from files, HTTP endpoints and S3 buckets.
type Loader struct {
	http    *http.Client
	objects ObjectGetter
	log     logging.Logger
}

type Option func(*Loader)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.http = c }
}

// WithObjectGetter enables s3:// sources.
func WithObjectGetter(g ObjectGetter) Option {
	return func(l *Loader) { l.objects = g }
}

func NewLoader(log logging.Logger, opts ...Option) *Loader {
	l := &Loader{
		http: &http.Client{Timeout: 10 * time.Second},
		log:  log.With("component", "catalog"),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *Loader) LoadRecipes(ctx context.Context, source string) Result[models.Recipe] {
	return load(ctx, l, source, recipeFromRow, "demo/recipes.json")
}

func (l *Loader) LoadGallery(ctx context.Context, source string) Result[models.GalleryImage] {
	return load(ctx, l, source, galleryFromRow, "demo/gallery.json")
}

func load[T any](ctx context.Context, l *Loader, source string, fromRow func(row) (T, error), demo string) Result[T] {
	items, err := read(ctx, l, source, fromRow)
	if err == nil {
		l.log.Info(ctx, "catalog loaded", "source", source, "count", len(items))
		return Result[T]{Items: items, Source: source}
	}

	err = fmt.Errorf("%w: %s: %w", common.ErrCatalogLoad, source, err)
	l.log.Error(ctx, "using demo catalog", "source", source, "error", err)

	fallback, derr := decodeDemo[T](demo)
	if derr != nil {
		// the embedded files are part of the build, this only trips on a broken edit
		panic(derr)
	}
	return Result[T]{Items: fallback, Source: demo, Fallback: true, Err: err}
}

func read[T any](ctx context.Context, l *Loader, source string, fromRow func(row) (T, error)) ([]T, error) {
	p, err := l.fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	if p.html {
		rows, err := scrapeTable(p.data)
		if err != nil {
			return nil, err
		}
		items := make([]T, 0, len(rows))
		for i, r := range rows {
			item, err := fromRow(r.withDefaultID(i + 1))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			items = append(items, item)
		}
		return items, nil
	}

	var items []T
	if err := json.Unmarshal(p.data, &items); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func decodeDemo[T any](name string) ([]T, error) {
	data, err := demoFS.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
