package models

// Organization represents a research or healthcare organization.
type Organization struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Province    string `json:"province"`
	Description string `json:"description"`
}

// CreateOrganizationPayload is the JSON body for POST /organizations/.
// The backend rejects duplicate name+province pairs with a 400.
type CreateOrganizationPayload struct {
	Name        string `json:"name"`
	Province    string `json:"province"`
	Description string `json:"description"`
}

// UpdateOrganizationPayload carries organization updates for PUT.
type UpdateOrganizationPayload struct {
	Name        string `json:"name,omitempty"`
	Province    string `json:"province,omitempty"`
	Description string `json:"description,omitempty"`
}

// OrganizationSelection is what a signup form submits: either a reference
// to an existing organization (name only) or a new organization to create
// (name, province and description all present).
type OrganizationSelection struct {
	Name        string
	Province    string
	Description string
}

// IsNew reports whether the selection describes a new organization that
// should be created rather than an existing one to look up.
func (s OrganizationSelection) IsNew() bool {
	return s.Province != "" && s.Description != ""
}
