package cli

import (
	"context"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/export"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/guard"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
)

// Export writes the customers matching the open list's filters (all
// customers when no list is open) to dest.
func (a *App) Export(ctx context.Context, dest string) error {
	if !a.guard.Allows(guard.CapCustomersExport) {
		a.println(accessDeniedMessage)
		return nil
	}

	var filter models.CustomerFilter
	if a.list != nil {
		filter = a.list.Query().Filter()
	}

	sink, err := export.OpenSink(ctx, dest, export.S3Config{
		Region:    a.config.S3Region,
		Endpoint:  a.config.S3Endpoint,
		AccessKey: a.config.S3AccessKey,
		SecretKey: a.config.S3SecretKey,
	})
	if err != nil {
		a.report(ctx, err)
		return err
	}

	n, err := a.roster.Export(ctx, filter, sink)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.printf("Exported %d customers to %s.\n", n, sink.Location())
	return nil
}
