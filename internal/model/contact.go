package model

type ContactType string

const (
	ContactTypeDoctor   ContactType = "doctor"
	ContactTypeStaff    ContactType = "staff"
	ContactTypeSupplier ContactType = "supplier"
	ContactTypeOther    ContactType = "other"
)

type Contact struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Phone string      `json:"phone,omitempty"`
	Type  ContactType `json:"type"`
}

func (c Contact) RecordID() string { return c.ID }

func (c Contact) WithID(id string) Contact {
	c.ID = id
	return c
}

type CreateContactRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
	Type  string `json:"type" validate:"omitempty,oneof=doctor staff supplier other"`
}

// ContactFilters.Type of "" or "all" disables the type filter.
type ContactFilters struct {
	SearchTerm string `form:"q"`
	Type       string `form:"type"`
}
