// Package model holds the response shapes shared by every resource.
//
// Entity types and request payloads live in one sub-package per resource
// (company, job, user).
package model

import (
	"fmt"
	"strconv"
)

// DeletedResponse is returned by every DELETE endpoint, e.g. {"deleted": "acme"}.
type DeletedResponse struct {
	Deleted any `json:"deleted"`
}

// ParseQueryInt converts the text of a numeric query parameter. Leading zeros
// are ignored ("010" is 10).
func ParseQueryInt(name, raw string) (int, error) {
	v, err := strconv.ParseInt(raw, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a whole number", name, raw)
	}
	return int(v), nil
}
