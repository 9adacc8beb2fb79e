// Package company contains the company entity and its request payloads.
package company

import (
	"github.com/shopspring/decimal"
)

// Company is a company row as exposed by the API.
type Company struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

// Job is the short form of a job listed under its company.
type Job struct {
	ID     int                 `json:"id"`
	Title  string              `json:"title"`
	Salary *int                `json:"salary"`
	Equity decimal.NullDecimal `json:"equity"`
}

// Detail is a company together with its jobs.
type Detail struct {
	Company
	Jobs []Job `json:"jobs"`
}

// Response wraps a single company: {"company": {...}}.
type Response struct {
	Company *Company `json:"company"`
}

// DetailResponse wraps a company with its jobs.
type DetailResponse struct {
	Company *Detail `json:"company"`
}

// ListResponse wraps a search result: {"companies": [...]}.
type ListResponse struct {
	Companies []Company `json:"companies"`
}

func (r *ListResponse) Count() int {
	return len(r.Companies)
}
