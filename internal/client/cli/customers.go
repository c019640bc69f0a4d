package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/guard"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/listing"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
)

var errNoList = errors.New("customer list is not open")

// openCustomers starts a fresh customer list for this visit of the screen.
func (a *App) openCustomers(ctx context.Context) error {
	a.closeList()

	list, err := listing.Open(ctx, a.customers, a.config.PageSize, a.log)
	if !a.isLoggedIn() {
		// the first fetch expired the session
		list.Close()
		a.report(ctx, err)
		return err
	}
	a.list = list
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.renderList()
	return nil
}

// ListCommand applies a search, filter, paging or sort command to the open
// customer list and redraws it.
func (a *App) ListCommand(ctx context.Context, cmd string, args []string) error {
	if a.list == nil || a.view.ID != guard.ViewCustomers {
		a.println("Open the customer list first (type 'customers').")
		return errNoList
	}

	var err error
	switch cmd {
	case "search":
		err = a.list.SetSearch(ctx, strings.Join(args, " "))
	case "filter":
		err = a.applyFilter(ctx, args)
	case "pagesize":
		var n int
		if n, err = intArg(args, "pagesize <10|25|50|100>"); err == nil {
			err = a.list.SetPageSize(ctx, n)
		}
	case "page":
		var n int
		if n, err = intArg(args, "page <n>"); err == nil {
			err = a.list.SetPage(ctx, n)
		}
	case "next":
		err = a.list.NextPage(ctx)
	case "prev":
		err = a.list.PrevPage(ctx)
	case "reload":
		err = a.list.Reload(ctx)
	case "sort":
		if len(args) != 1 {
			err = fmt.Errorf("usage: sort <%s>", strings.Join(sortColumns(), "|"))
			break
		}
		var col listing.Column
		if col, err = listing.ParseColumn(args[0]); err == nil {
			err = a.list.Sort(col)
		}
	default:
		err = fmt.Errorf("unknown list command %q", cmd)
	}

	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.renderList()
	return nil
}

func sortColumns() []string {
	return []string{
		string(listing.ColDocumentType), string(listing.ColDocumentNumber),
		string(listing.ColFirstName), string(listing.ColLastName),
		string(listing.ColPhone), string(listing.ColEmail),
		string(listing.ColBirthDate), string(listing.ColGender), string(listing.ColStatus),
	}
}

func intArg(args []string, usage string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	return n, nil
}

func (a *App) applyFilter(ctx context.Context, args []string) error {
	const usage = "usage: filter <type|gender|status> <value|all>"
	if len(args) != 2 {
		return errors.New(usage)
	}

	value := args[1]
	if strings.EqualFold(value, "all") {
		value = ""
	}

	switch strings.ToLower(args[0]) {
	case "type", "dni_type":
		return a.list.SetDocumentType(ctx, models.DocumentType(strings.ToUpper(value)))
	case "gender":
		return a.list.SetGender(ctx, models.Gender(strings.ToUpper(value)))
	case "status":
		return a.list.SetStatus(ctx, models.RecordStatus(strings.ToLower(value)))
	default:
		return errors.New(usage)
	}
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func (a *App) renderList() {
	snap := a.list.Snapshot()
	q := snap.Query

	var filters []string
	if q.Search != "" {
		filters = append(filters, fmt.Sprintf("search=%q", q.Search))
	}
	if q.DocumentType != "" {
		filters = append(filters, "type="+string(q.DocumentType))
	}
	if q.Gender != "" {
		filters = append(filters, "gender="+string(q.Gender))
	}
	if q.Status != "" {
		filters = append(filters, "status="+string(q.Status))
	}
	if len(filters) > 0 {
		a.println("Filters:", strings.Join(filters, " "))
	}
	if q.SortColumn != "" {
		a.printf("Sorted by %s %s\n", q.SortColumn, q.SortDirection)
	}

	if len(snap.Rows) == 0 {
		a.println("No customers found.")
	} else {
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDOCUMENT\tNAME\tPHONE\tBIRTH DATE\tGENDER\tSTATUS")
		for _, c := range snap.Rows {
			birth := "-"
			if c.BirthDate != nil && !c.BirthDate.IsZero() {
				birth = c.BirthDate.String()
			}
			fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\t%s\t%s\n",
				c.ID, c.DocumentType, c.DocumentNumber, c.FullName(),
				orDash(c.Phone), birth, c.Gender, c.Status)
		}
		_ = tw.Flush()
	}

	from := min((q.Page-1)*q.PageSize+1, snap.Total)
	to := min(q.Page*q.PageSize, snap.Total)
	pages := max(snap.PageCount, 1)
	a.printf("Showing %d to %d of %d results. Page %d of %d, %d per page.\n",
		from, to, snap.Total, q.Page, pages, q.PageSize)
}

// DeleteCustomer removes a customer after confirmation. With the list open
// the current page is reloaded.
func (a *App) DeleteCustomer(ctx context.Context, id string) error {
	if !a.guard.Allows(guard.CapCustomersWrite) {
		a.println(accessDeniedMessage)
		return nil
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete customer %s?", id), a.out)
	if err != nil || !ok {
		a.println("Nothing deleted.")
		return err
	}

	if a.list != nil && a.view.ID == guard.ViewCustomers {
		err = a.list.Delete(ctx, id)
	} else {
		err = a.customers.Delete(ctx, id)
	}
	if err != nil {
		a.report(ctx, err)
		return err
	}

	a.println("Customer deleted.")
	switch {
	case a.view.ID == guard.ViewCustomers:
		a.renderList()
	case a.view.ID == guard.ViewCustomerDetail, a.view.ID == guard.ViewCustomerEdit:
		return a.Navigate(ctx, "/customers")
	}
	return nil
}
