package cli

import (
	"context"
	"errors"
	"sort"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/client"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/listing"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
)

// report tells the operator what went wrong. Errors already announced
// elsewhere (session expiry, superseded listings) stay silent.
func (a *App) report(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var (
		ve *models.ValidationError
		ae *client.AuthError
		re *client.RequestError
	)

	switch {
	case errors.Is(err, client.ErrSessionExpired), errors.Is(err, listing.ErrStale):
		return
	case errors.As(err, &ve):
		a.println("Please fix the following:")
		keys := make([]string, 0, len(ve.Fields))
		for k := range ve.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			a.printf("  %s: %s\n", k, ve.Fields[k])
		}
	case errors.As(err, &ae):
		a.println(ae.Message)
	case errors.As(err, &re):
		a.println("Request failed:", re.Detail)
	case errors.Is(err, client.ErrUnavailable):
		a.println("Server unavailable, try again later.")
	case errors.Is(err, client.ErrMissingTotal):
		a.println("The server did not report how many customers there are; cannot paginate.")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		a.println("Cancelled.")
	default:
		a.println("Error:", err)
	}
	a.log.Debug(ctx, "command failed", "error", err)
}
