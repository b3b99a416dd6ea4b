package openfactura

import (
	"fmt"
	"strings"
)

type Environment int

const (
	Development Environment = iota
	Production
)

func (e Environment) BaseURL() string {
	switch e {
	case Production:
		return "https://api.haulmer.com"
	case Development:
		return "https://dev-api.haulmer.com"
	}
	panic("Invalid environment")
}

func (e Environment) Name() string {
	switch e {
	case Production:
		return "production"
	case Development:
		return "development"
	}
	panic("Invalid environment")
}

func (e *Environment) UnmarshalText(text []byte) error {
	val := strings.ToLower(strings.TrimSpace(string(text)))

	switch val {
	case "production", "prod":
		*e = Production
	case "development", "dev":
		*e = Development
	default:
		return fmt.Errorf("invalid OF_ENV: %q (allowed: production, development)", val)
	}
	return nil
}
