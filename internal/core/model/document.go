package model

import (
	"fmt"
	"strings"
)

// DocumentRecord is the structured extraction of one paper. All six list
// fields are required; a field decoded as nil counts as absent.
type DocumentRecord struct {
	Claims              []string `json:"claims"`
	Methods             []string `json:"methods"`
	Evidence            []string `json:"evidence"`
	ExplicitLimitations []string `json:"explicit_limitations"`
	ImplicitLimitations []string `json:"implicit_limitations"`
	Variables           []string `json:"variables"`
}

// MissingFieldError reports every required field absent from a document.
type MissingFieldError struct {
	Document string
	Fields   []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s missing required fields: [%s]", e.Document, strings.Join(e.Fields, ", "))
}

// Validate checks that all required fields are present. It collects every
// missing field rather than stopping at the first.
func (d *DocumentRecord) Validate(name string) error {
	var missing []string
	if d.Claims == nil {
		missing = append(missing, "claims")
	}
	if d.Methods == nil {
		missing = append(missing, "methods")
	}
	if d.Evidence == nil {
		missing = append(missing, "evidence")
	}
	if d.ExplicitLimitations == nil {
		missing = append(missing, "explicit_limitations")
	}
	if d.ImplicitLimitations == nil {
		missing = append(missing, "implicit_limitations")
	}
	if d.Variables == nil {
		missing = append(missing, "variables")
	}
	if len(missing) > 0 {
		return &MissingFieldError{Document: name, Fields: missing}
	}
	return nil
}
