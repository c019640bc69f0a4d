package listing

import (
	"errors"
	"slices"
	"strings"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
)

var ErrUnknownColumn = errors.New("unknown sort column")

// Column names a sortable customer field.
type Column string

const (
	ColDocumentType   Column = "dni_type"
	ColDocumentNumber Column = "dni_number"
	ColFirstName      Column = "first_name"
	ColLastName       Column = "last_name"
	ColPhone          Column = "phone"
	ColEmail          Column = "email"
	ColBirthDate      Column = "birth_date"
	ColGender         Column = "gender"
	ColStatus         Column = "status"
)

// sortKey returns the comparable value of a column and whether the
// customer has one at all.
type sortKey func(c models.Customer) (string, bool)

func optional(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

var columns = map[Column]sortKey{
	ColDocumentType:   func(c models.Customer) (string, bool) { return string(c.DocumentType), true },
	ColDocumentNumber: func(c models.Customer) (string, bool) { return c.DocumentNumber, true },
	ColFirstName:      func(c models.Customer) (string, bool) { return c.FirstName, true },
	ColLastName:       func(c models.Customer) (string, bool) { return c.LastName, true },
	ColPhone:          func(c models.Customer) (string, bool) { return optional(c.Phone) },
	ColEmail:          func(c models.Customer) (string, bool) { return optional(c.Email) },
	ColBirthDate: func(c models.Customer) (string, bool) {
		if c.BirthDate == nil || c.BirthDate.IsZero() {
			return "", false
		}
		return c.BirthDate.String(), true
	},
	ColGender: func(c models.Customer) (string, bool) { return string(c.Gender), true },
	ColStatus: func(c models.Customer) (string, bool) { return string(c.Status), true },
}

// ParseColumn validates a column name.
func ParseColumn(name string) (Column, error) {
	col := Column(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := columns[col]; !ok {
		return "", ErrUnknownColumn
	}
	return col, nil
}

// sortRows orders rows in place by col. Rows without a value go last in
// both directions; ties keep their loaded order.
func sortRows(rows []models.Customer, col Column, dir Direction) {
	key, ok := columns[col]
	if !ok {
		return
	}

	slices.SortStableFunc(rows, func(a, b models.Customer) int {
		av, aok := key(a)
		bv, bok := key(b)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}

		c := strings.Compare(av, bv)
		if dir == Desc {
			c = -c
		}
		return c
	})
}
