package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/guard"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
)

// ask prompts for one form field. The current value, if any, is shown and
// kept when the operator just presses Enter.
func (a *App) ask(label, current string) (string, error) {
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", label, current)
	}
	return GetSimpleText(a.reader, prompt, a.out)
}

// customerForm collects a CustomerInput. Blank answers leave a field out:
// required on create, unchanged on edit. It returns how many fields were
// given.
func (a *App) customerForm(current *models.Customer) (models.CustomerInput, int, error) {
	var (
		in      models.CustomerInput
		cur     models.Customer
		given   int
		invalid = &models.ValidationError{}
	)
	if current != nil {
		cur = *current
	}

	text := func(dst **string, label, currentValue string) error {
		v, err := a.ask(label, currentValue)
		if err != nil {
			return err
		}
		if v != "" {
			*dst = models.Ptr(v)
			given++
		}
		return nil
	}

	docTypes := make([]string, len(models.DocumentTypes))
	for i, d := range models.DocumentTypes {
		docTypes[i] = string(d)
	}

	steps := []func() error{
		func() error {
			v, err := a.ask("Document type ("+strings.Join(docTypes, "/")+")", string(cur.DocumentType))
			if err == nil && v != "" {
				in.DocumentType = models.Ptr(models.DocumentType(strings.ToUpper(v)))
				given++
			}
			return err
		},
		func() error { return text(&in.DocumentNumber, "Document number", cur.DocumentNumber) },
		func() error { return text(&in.FirstName, "First name", cur.FirstName) },
		func() error { return text(&in.MiddleName, "Middle name (optional)", deref(cur.MiddleName)) },
		func() error { return text(&in.LastName, "Last name", cur.LastName) },
		func() error {
			return text(&in.SecondLastName, "Second last name (optional)", deref(cur.SecondLastName))
		},
		func() error {
			currentDate := ""
			if cur.BirthDate != nil {
				currentDate = cur.BirthDate.String()
			}
			v, err := a.ask("Birth date (YYYY-MM-DD)", currentDate)
			if err != nil || v == "" {
				return err
			}
			d, perr := models.ParseDate(v)
			if perr != nil {
				invalid.Fields = map[string]string{"birth_date": "use the format YYYY-MM-DD"}
				return nil
			}
			in.BirthDate = &d
			given++
			return nil
		},
		func() error {
			v, err := a.ask("Gender (M/F/O)", string(cur.Gender))
			if err == nil && v != "" {
				in.Gender = models.Ptr(models.Gender(strings.ToUpper(v)))
				given++
			}
			return err
		},
		func() error { return text(&in.Phone, "Phone", deref(cur.Phone)) },
		func() error {
			return text(&in.AlternativePhone, "Alternative phone (optional)", deref(cur.AlternativePhone))
		},
		func() error { return text(&in.Address, "Address (optional)", deref(cur.Address)) },
	}
	if current != nil {
		steps = append(steps, func() error {
			v, err := a.ask("Status (active/inactive/archived)", string(cur.Status))
			if err == nil && v != "" {
				in.Status = models.Ptr(models.RecordStatus(strings.ToLower(v)))
				given++
			}
			return err
		})
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return models.CustomerInput{}, 0, err
		}
	}
	if len(invalid.Fields) > 0 {
		return models.CustomerInput{}, 0, invalid
	}
	return in, given, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (a *App) createCustomer(ctx context.Context) error {
	a.println("New customer")
	in, _, err := a.customerForm(nil)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	c, err := a.customers.Create(ctx, in)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.printf("Customer %s registered.\n", c.FullName())
	return a.Navigate(ctx, "/customers/"+c.ID)
}

func (a *App) editCustomer(ctx context.Context, id string) error {
	c, err := a.customers.Get(ctx, id)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	a.printf("Editing %s (press Enter to keep a value)\n", c.FullName())
	in, given, err := a.customerForm(c)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	if given == 0 {
		a.println("Nothing to change.")
		return nil
	}

	updated, err := a.customers.Update(ctx, id, in)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.printf("Customer %s updated.\n", updated.FullName())
	return a.Navigate(ctx, "/customers/"+id)
}

func (a *App) showCustomer(ctx context.Context, id string) error {
	c, err := a.customers.Get(ctx, id)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	row := func(k, v string) { fmt.Fprintf(tw, "%s\t%s\n", k, v) }
	row("Name", c.FullName())
	row("ID", c.ID)
	row("Document", string(c.DocumentType)+" "+c.DocumentNumber)
	if c.BirthDate != nil {
		row("Birth date", c.BirthDate.String())
	}
	row("Gender", string(c.Gender))
	row("Phone", orDash(c.Phone))
	row("Alternative phone", orDash(c.AlternativePhone))
	row("Email", orDash(c.Email))
	row("Address", orDash(c.Address))
	row("Status", string(c.Status))
	if !c.CreatedAt.IsZero() {
		row("Registered", c.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()

	if !a.guard.Allows(guard.CapBiometrics) {
		return nil
	}
	list, err := a.biometrics.List(ctx, c.ID)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.printBiometrics(list)
	return nil
}
