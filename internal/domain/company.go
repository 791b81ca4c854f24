package domain

import (
	"strings"
	"time"
)

// Industries lists the industry choices offered by the profile editor.
// The field itself is an open string set.
var Industries = []string{
	"Technology",
	"Healthcare",
	"Finance",
	"Education",
	"Manufacturing",
	"Retail",
	"Real Estate",
	"Hospitality",
	"Transportation",
	"Construction",
	"Other",
}

// SocialLink is a labelled external profile URL owned by a CompanyProfile.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// CompanyProfile holds the company details edited on the profile page.
// No field is structurally required; required-ness only matters for
// completion scoring and for the save form.
type CompanyProfile struct {
	CompanyName string       `json:"company_name"`
	Address     string       `json:"address"`
	City        string       `json:"city"`
	State       string       `json:"state"`
	Country     string       `json:"country"`
	PostalCode  string       `json:"postal_code"`
	Website     string       `json:"website"`
	Industry    string       `json:"industry"`
	FoundedDate *time.Time   `json:"founded_date,omitempty"`
	Description string       `json:"description"`
	LogoURL     string       `json:"logo_url"`
	BannerURL   string       `json:"banner_url"`
	SocialLinks []SocialLink `json:"social_links"`
}

// Clone returns a deep copy of the profile.
func (p CompanyProfile) Clone() CompanyProfile {
	if p.FoundedDate != nil {
		founded := *p.FoundedDate
		p.FoundedDate = &founded
	}
	if p.SocialLinks != nil {
		links := make([]SocialLink, len(p.SocialLinks))
		copy(links, p.SocialLinks)
		p.SocialLinks = links
	}
	return p
}

// CompanyProfileUpdate is a partial profile. Nil fields are left unchanged
// when merged.
type CompanyProfileUpdate struct {
	CompanyName *string
	Address     *string
	City        *string
	State       *string
	Country     *string
	PostalCode  *string
	Website     *string
	Industry    *string
	FoundedDate *time.Time
	Description *string
	LogoURL     *string
	BannerURL   *string
	SocialLinks *[]SocialLink
}

// IsEmpty reports whether no field is set.
func (u CompanyProfileUpdate) IsEmpty() bool {
	return u == (CompanyProfileUpdate{})
}

// Apply shallow-merges the set fields into p and returns the result.
func (u CompanyProfileUpdate) Apply(p CompanyProfile) CompanyProfile {
	p = p.Clone()
	setString(&p.CompanyName, u.CompanyName)
	setString(&p.Address, u.Address)
	setString(&p.City, u.City)
	setString(&p.State, u.State)
	setString(&p.Country, u.Country)
	setString(&p.PostalCode, u.PostalCode)
	setString(&p.Website, u.Website)
	setString(&p.Industry, u.Industry)
	setString(&p.Description, u.Description)
	setString(&p.LogoURL, u.LogoURL)
	setString(&p.BannerURL, u.BannerURL)
	if u.FoundedDate != nil {
		founded := DateOf(*u.FoundedDate)
		p.FoundedDate = &founded
	}
	if u.SocialLinks != nil {
		links := make([]SocialLink, len(*u.SocialLinks))
		copy(links, *u.SocialLinks)
		p.SocialLinks = links
	}
	return p
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// ImageKind selects which profile image an upload replaces.
type ImageKind string

const (
	ImageLogo   ImageKind = "logo"
	ImageBanner ImageKind = "banner"
)

// ParseImageKind converts user input into an ImageKind.
func ParseImageKind(s string) (ImageKind, bool) {
	switch ImageKind(strings.ToLower(strings.TrimSpace(s))) {
	case ImageLogo:
		return ImageLogo, true
	case ImageBanner:
		return ImageBanner, true
	default:
		return "", false
	}
}
