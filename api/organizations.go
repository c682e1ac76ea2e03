package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"medinsight-client/driver"
	"medinsight-client/models"
)

// OrganizationsAPI wraps the /organizations endpoints.
type OrganizationsAPI struct {
	client *driver.Client
}

// NewOrganizationsAPI creates the organizations facade over client.
func NewOrganizationsAPI(client *driver.Client) *OrganizationsAPI {
	return &OrganizationsAPI{client: client}
}

// Create registers a new organization. The backend answers 400 when the
// name+province pair already exists.
func (o *OrganizationsAPI) Create(ctx context.Context, payload models.CreateOrganizationPayload) driver.Response[models.Organization] {
	resp := driver.Do[models.Organization](ctx, o.client, "/organizations/", driver.RequestOptions{
		Method: http.MethodPost,
		JSON:   payload,
	})
	if resp.OK() {
		o.client.InvalidateCache("/organizations/")
	}
	return resp
}

// List fetches all organizations.
func (o *OrganizationsAPI) List(ctx context.Context) driver.Response[[]models.Organization] {
	return driver.Get[[]models.Organization](ctx, o.client, "/organizations/")
}

// ByID fetches a single organization.
func (o *OrganizationsAPI) ByID(ctx context.Context, id int64) driver.Response[models.Organization] {
	return driver.Get[models.Organization](ctx, o.client, fmt.Sprintf("/organizations/%d", id))
}

// SearchByName looks organizations up by name.
func (o *OrganizationsAPI) SearchByName(ctx context.Context, name string) driver.Response[[]models.Organization] {
	return driver.Do[[]models.Organization](ctx, o.client, "/organizations/search", driver.RequestOptions{
		Query: url.Values{"q": {name}},
	})
}

// Update replaces an organization's fields.
func (o *OrganizationsAPI) Update(ctx context.Context, id int64, payload models.UpdateOrganizationPayload) driver.Response[models.Organization] {
	resp := driver.Do[models.Organization](ctx, o.client, fmt.Sprintf("/organizations/%d", id), driver.RequestOptions{
		Method: http.MethodPut,
		JSON:   payload,
	})
	if resp.OK() {
		o.client.InvalidateCache("/organizations/")
	}
	return resp
}

// Delete removes an organization.
func (o *OrganizationsAPI) Delete(ctx context.Context, id int64) driver.Response[struct{}] {
	resp := driver.Do[struct{}](ctx, o.client, fmt.Sprintf("/organizations/%d", id), driver.RequestOptions{
		Method: http.MethodDelete,
	})
	if resp.OK() {
		o.client.InvalidateCache("/organizations/")
	}
	return resp
}
