package urlimport

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/netconfd/internal/logging"
)

type fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// Importer fetches and strictly validates the document named by a locator.
// It never writes anything.
type Importer struct {
	fetcher   fetcher
	validator *Validator
	logger    logging.Logger
}

func NewImporter(f fetcher, v *Validator, logger logging.Logger) *Importer {
	return &Importer{fetcher: f, validator: v, logger: logger}
}

// Import returns the validated document at locator.
func (i *Importer) Import(ctx context.Context, locator string) (Document, error) {
	data, err := i.fetcher.Fetch(ctx, locator)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", locator, err)
	}

	doc, err := i.validator.Parse(data)
	if err != nil {
		return nil, err
	}

	i.logger.Debug(ctx, "url document imported", "url", locator, "bytes", len(data), "members", len(doc))
	return doc, nil
}
