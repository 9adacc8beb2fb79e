// Package job contains the job posting entity and its request payloads.
package job

import (
	"github.com/shopspring/decimal"
)

// Job is a job posting. Equity is a fraction between 0 and 1 and is null
// when the posting offers none.
type Job struct {
	ID            int                 `json:"id"`
	Title         string              `json:"title"`
	Salary        *int                `json:"salary"`
	Equity        decimal.NullDecimal `json:"equity"`
	CompanyHandle string              `json:"companyHandle"`
}

type Response struct {
	Job *Job `json:"job"`
}

type ListResponse struct {
	Jobs []Job `json:"jobs"`
}

func (r *ListResponse) Count() int {
	return len(r.Jobs)
}
