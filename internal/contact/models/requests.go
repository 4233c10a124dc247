package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
)

const (
	DateLayout   = "2006-01-02"
	maxTextRunes = 255
)

// NameInput is a contact name as submitted by clients.
type NameInput struct {
	Family *string `json:"family"`
	Given  *string `json:"given"`
}

// DateInput is a contact date as submitted by clients; Date is YYYY-MM-DD.
type DateInput struct {
	Date *string `json:"date"`
	Text *string `json:"text"`
}

// ContactRequest creates a contact or replaces its names and dates.
type ContactRequest struct {
	ContactNames []NameInput `json:"contactNames"`
	ContactDates []DateInput `json:"contactDates"`
}

// ContactNameRequest creates or replaces a single name.
type ContactNameRequest struct {
	Contact id.ContactID `json:"contact"`
	NameInput
}

// ContactDateRequest creates or replaces a single date.
type ContactDateRequest struct {
	Contact id.ContactID `json:"contact"`
	DateInput
}

// ContactDatePatch changes only the fields present in the body. An explicit
// null clears the field.
type ContactDatePatch struct {
	Date json.RawMessage `json:"date"`
	Text json.RawMessage `json:"text"`
}

func (in NameInput) Validate() error {
	if err := checkText("family", in.Family); err != nil {
		return err
	}
	return checkText("given", in.Given)
}

func (r ContactNameRequest) Validate() error {
	if r.Contact <= 0 {
		return dErrors.New(dErrors.CodeValidation, "contact is required")
	}
	return r.NameInput.Validate()
}

// Parse validates the input and returns the day it names.
func (in DateInput) Parse() (*time.Time, error) {
	if err := checkText("text", in.Text); err != nil {
		return nil, err
	}
	return parseDate(in.Date)
}

func (r ContactDateRequest) Validate() error {
	if r.Contact <= 0 {
		return dErrors.New(dErrors.CodeValidation, "contact is required")
	}
	_, err := r.DateInput.Parse()
	return err
}

func (r ContactRequest) Validate() error {
	for _, n := range r.ContactNames {
		if err := n.Validate(); err != nil {
			return err
		}
	}
	for _, d := range r.ContactDates {
		if _, err := d.Parse(); err != nil {
			return err
		}
	}
	return nil
}

// Apply writes the fields present in p onto d.
func (p ContactDatePatch) Apply(d *ContactDate) error {
	if len(p.Date) > 0 {
		var raw *string
		if err := decodeField(p.Date, &raw); err != nil {
			return dErrors.New(dErrors.CodeValidation, "date must be a string or null")
		}
		day, err := parseDate(raw)
		if err != nil {
			return err
		}
		d.Date = day
	}
	if len(p.Text) > 0 {
		var text *string
		if err := decodeField(p.Text, &text); err != nil {
			return dErrors.New(dErrors.CodeValidation, "text must be a string or null")
		}
		if err := checkText("text", text); err != nil {
			return err
		}
		d.Text = text
	}
	return nil
}

func decodeField(raw json.RawMessage, dst any) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	day, err := time.Parse(DateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "date must use the YYYY-MM-DD format")
	}
	return &day, nil
}

func checkText(field string, s *string) error {
	if s != nil && utf8.RuneCountInString(*s) > maxTextRunes {
		return dErrors.New(dErrors.CodeValidation, field+" must be at most 255 characters")
	}
	return nil
}

// MaxImportBatch bounds the contacts accepted by one import call.
const MaxImportBatch = 100

// ImportRequest carries contacts brought in from another address book.
type ImportRequest struct {
	Contacts []ContactRequest `json:"contacts"`
}

func (r ImportRequest) Validate() error {
	if len(r.Contacts) > MaxImportBatch {
		return dErrors.New(dErrors.CodeValidation, "at most 100 contacts can be imported at once")
	}
	for _, c := range r.Contacts {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Key identifies a name by its parts; nil and empty are distinct. ok is false
// when both parts are nil, since such a name never identifies anyone.
func (in NameInput) Key() (key string, ok bool) {
	if in.Family == nil && in.Given == nil {
		return "", false
	}
	part := func(s *string) string {
		if s == nil {
			return "\x00"
		}
		return "=" + *s
	}
	return part(in.Family) + "\x1f" + part(in.Given), true
}
