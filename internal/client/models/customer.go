package models

import (
	"strings"
	"time"
)

// DocumentType is the kind of identity document of a customer.
type DocumentType string

const (
	DocumentCC DocumentType = "CC" // citizenship card
	DocumentTI DocumentType = "TI" // identity card (minors)
	DocumentCE DocumentType = "CE" // foreigner card
	DocumentPP DocumentType = "PP" // passport
)

// DocumentTypes lists the accepted document types in display order.
var DocumentTypes = []DocumentType{DocumentCC, DocumentTI, DocumentCE, DocumentPP}

func (d DocumentType) Valid() bool { return contains(DocumentTypes, d) }

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

func (g Gender) Valid() bool { return contains(Genders, g) }

// RecordStatus is the lifecycle status of a customer record.
type RecordStatus string

const (
	StatusActive   RecordStatus = "active"
	StatusInactive RecordStatus = "inactive"
	StatusArchived RecordStatus = "archived"
	StatusDeleted  RecordStatus = "deleted"
)

var Statuses = []RecordStatus{StatusActive, StatusInactive, StatusArchived, StatusDeleted}

func (s RecordStatus) Valid() bool { return contains(Statuses, s) }

// Customer is a read copy of a server-owned gym member record.
// Optional fields are pointers so that "absent" is distinguishable from "".
type Customer struct {
	ID               string         `json:"id"`
	DocumentType     DocumentType   `json:"dni_type"`
	DocumentNumber   string         `json:"dni_number"`
	FirstName        string         `json:"first_name"`
	MiddleName       *string        `json:"middle_name,omitempty"`
	LastName         string         `json:"last_name"`
	SecondLastName   *string        `json:"second_last_name,omitempty"`
	Phone            *string        `json:"phone,omitempty"`
	AlternativePhone *string        `json:"alternative_phone,omitempty"`
	Email            *string        `json:"email,omitempty"`
	BirthDate        *Date          `json:"birth_date,omitempty"`
	Gender           Gender         `json:"gender"`
	Address          *string        `json:"address,omitempty"`
	Status           RecordStatus   `json:"status"`
	IsActive         bool           `json:"is_active"`
	MetaInfo         map[string]any `json:"meta_info,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// FullName joins the non-empty name parts.
func (c Customer) FullName() string {
	parts := []string{c.FirstName, deref(c.MiddleName), c.LastName, deref(c.SecondLastName)}
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// CustomerInput is the payload for creating or updating a customer.
// On update only non-nil fields are sent.
type CustomerInput struct {
	DocumentType     *DocumentType  `json:"dni_type,omitempty"`
	DocumentNumber   *string        `json:"dni_number,omitempty"`
	FirstName        *string        `json:"first_name,omitempty"`
	MiddleName       *string        `json:"middle_name,omitempty"`
	LastName         *string        `json:"last_name,omitempty"`
	SecondLastName   *string        `json:"second_last_name,omitempty"`
	Phone            *string        `json:"phone,omitempty"`
	AlternativePhone *string        `json:"alternative_phone,omitempty"`
	BirthDate        *Date          `json:"birth_date,omitempty"`
	Gender           *Gender        `json:"gender,omitempty"`
	Address          *string        `json:"address,omitempty"`
	Status           *RecordStatus  `json:"status,omitempty"`
	MetaInfo         map[string]any `json:"meta_info,omitempty"`
}

// CustomerFilter carries the listing query parameters. Empty fields are
// omitted from the request.
type CustomerFilter struct {
	Skip         int
	Limit        int
	DocumentType DocumentType
	Gender       Gender
	Status       RecordStatus
	Search       string
}

// CustomerPage is one page of the customer listing together with the
// total number of records matching the filter.
type CustomerPage struct {
	Items []Customer `json:"items"`
	Total int        `json:"total"`
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
