package model

import (
	"fmt"
	"strings"
)

// missingField pairs the semantic attribute name with the wire name it maps to,
// so validation messages can show both.
type missingField struct {
	name string
	wire string
}

// ValidationError reports required fields that were absent or blank when a
// value object was serialized to its wire fragment. Object is the lowercase
// kind ("receiver", "item", "issuer", "totals", "dte").
type ValidationError struct {
	Object string
	fields []missingField
}

func newValidationError(object string, fields []missingField) *ValidationError {
	return &ValidationError{Object: object, fields: fields}
}

func (e *ValidationError) Error() string {
	var parts []string
	for _, f := range e.fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.name, f.wire))
	}
	object := strings.ToUpper(e.Object[:1]) + e.Object[1:]
	return fmt.Sprintf("%s validation failed, missing or blank fields: %s", object, strings.Join(parts, ", "))
}

// Fields returns the semantic names of the offending fields, in wire order.
func (e *ValidationError) Fields() []string {
	names := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		names = append(names, f.name)
	}
	return names
}

// FieldMap returns the offending fields keyed by object kind, for callers that
// collect failures from several objects.
func (e *ValidationError) FieldMap() map[string][]string {
	return map[string][]string{e.Object: e.Fields()}
}

// requiredCheck accumulates missing fields while a wire fragment is assembled.
type requiredCheck struct {
	object string
	missed []missingField
}

func (c *requiredCheck) text(name, wire, value string) {
	if blank(value) {
		c.missed = append(c.missed, missingField{name: name, wire: wire})
	}
}

func (c *requiredCheck) present(name, wire string, ok bool) {
	if !ok {
		c.missed = append(c.missed, missingField{name: name, wire: wire})
	}
}

func (c *requiredCheck) err() error {
	if len(c.missed) == 0 {
		return nil
	}
	return newValidationError(c.object, c.missed)
}
