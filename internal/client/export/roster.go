package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
	"github.com/sabastianrafa/powergym-ag-system/internal/logging"
)

// ContentType of a roster export: one JSON customer per line.
const ContentType = "application/x-ndjson"

const defaultBatch = 100

type Lister interface {
	List(ctx context.Context, filter models.CustomerFilter) (models.CustomerPage, error)
}

// Roster pages through the customer listing and hands the result to a sink.
type Roster struct {
	src   Lister
	log   logging.Logger
	batch int
}

func NewRoster(src Lister, log logging.Logger) *Roster {
	if log == nil {
		log = logging.Nop()
	}
	return &Roster{src: src, log: log, batch: defaultBatch}
}

// Export writes every customer matching filter to sink as JSON lines and
// returns how many were written. Skip and Limit of filter are ignored.
func (r *Roster) Export(ctx context.Context, filter models.CustomerFilter, sink Sink) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	filter.Skip = 0
	filter.Limit = r.batch
	written := 0

	for {
		page, err := r.src.List(ctx, filter)
		if err != nil {
			return 0, fmt.Errorf("list customers: %w", err)
		}
		for _, c := range page.Items {
			if err := enc.Encode(c); err != nil {
				return 0, fmt.Errorf("encode customer %s: %w", c.ID, err)
			}
		}
		written += len(page.Items)
		filter.Skip += len(page.Items)

		if len(page.Items) == 0 || filter.Skip >= page.Total {
			break
		}
	}

	if err := sink.Put(ctx, buf.Bytes()); err != nil {
		return 0, err
	}
	r.log.Info(ctx, "roster exported", "count", written, "location", sink.Location())
	return written, nil
}
