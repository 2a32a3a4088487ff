package dto

import "github.com/enpl/fieldops-console/internal/domain"

// SiteRequest payload for site create/update. Nil fields are left unchanged
// on update.
type SiteRequest struct {
	CustomerID    *int64  `json:"customerId,omitempty"`
	SiteName      *string `json:"siteName,omitempty"`
	SiteAddress   *string `json:"siteAddress,omitempty"`
	ContactName   *string `json:"contactName,omitempty"`
	ContactNumber *string `json:"contactNumber,omitempty"`
	ContactEmail  *string `json:"contactEmail,omitempty"`
}

// SiteResponse is the public shape of a site.
type SiteResponse struct {
	ID            int64  `json:"id"`
	CustomerID    int64  `json:"customerId"`
	SiteName      string `json:"siteName"`
	SiteAddress   string `json:"siteAddress"`
	ContactName   string `json:"contactName"`
	ContactNumber string `json:"contactNumber"`
	ContactEmail  string `json:"contactEmail"`
}

// NewSiteResponse maps a domain site.
func NewSiteResponse(site *domain.Site) SiteResponse {
	return SiteResponse{
		ID:            site.ID,
		CustomerID:    site.CustomerID,
		SiteName:      site.SiteName,
		SiteAddress:   site.SiteAddress,
		ContactName:   site.ContactName,
		ContactNumber: site.ContactNumber,
		ContactEmail:  site.ContactEmail,
	}
}

// NewSiteResponses maps a slice of sites.
func NewSiteResponses(sites []domain.Site) []SiteResponse {
	out := make([]SiteResponse, 0, len(sites))
	for i := range sites {
		out = append(out, NewSiteResponse(&sites[i]))
	}
	return out
}
