package usecase

import (
	"context"
	"io"

	"kasubs/internal/domain/contenttree"
	"kasubs/internal/domain/model"
)

// TreeExportConfig controls report rendering.
type TreeExportConfig struct {
	TranslationLocale  string
	IncludeDescription bool
}

// TreeExport renders cached trees for spreadsheets.
type TreeExport struct {
	catalog *TreeCatalog
	opts    contenttree.ReportOptions
}

// NewTreeExport constructs a TreeExport use case.
func NewTreeExport(catalog *TreeCatalog, cfg TreeExportConfig) *TreeExport {
	return &TreeExport{
		catalog: catalog,
		opts: contenttree.ReportOptions{
			TranslationLocale:  cfg.TranslationLocale,
			IncludeDescription: cfg.IncludeDescription,
		},
	}
}

// WithDescriptions returns a copy whose reports end every row with the
// plain-text description.
func (e *TreeExport) WithDescriptions() *TreeExport {
	cp := *e
	cp.opts.IncludeDescription = true
	return &cp
}

// Report writes the full report of the cached contentType tree.
func (e *TreeExport) Report(ctx context.Context, w io.Writer, contentType model.ContentType) error {
	tree, err := e.catalog.For(contentType).Get(ctx)
	if err != nil {
		return err
	}
	return contenttree.WriteReport(w, tree, e.opts)
}

// Unique writes one row per distinct content item across the trees of the
// given content types. A single seen set spans all trees.
func (e *TreeExport) Unique(ctx context.Context, w io.Writer, contentTypes []model.ContentType, keys []string) (int, error) {
	seen := contenttree.IDSet{}
	var records []contenttree.Record
	for _, ct := range contentTypes {
		recs, err := e.catalog.For(ct).UniqueContentData(ctx, keys, seen)
		if err != nil {
			return 0, err
		}
		records = append(records, recs...)
	}
	if err := contenttree.WriteRecords(w, keys, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// Items lists the content items of the cached contentType tree in document order.
func (e *TreeExport) Items(ctx context.Context, contentType model.ContentType) ([]model.Node, error) {
	tree, err := e.catalog.For(contentType).Get(ctx)
	if err != nil {
		return nil, err
	}
	return contenttree.ContentItems(tree, contentType), nil
}
