package config

import (
	"os"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	// CI environment is automatically detected
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch env := os.Getenv("ENV"); env {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// IsProduction returns true if e is the production environment
func (e Environment) IsProduction() bool {
	return e == Production
}

// RequiresSecrets reports whether the environment must be given real credentials
// rather than the local defaults.
func (e Environment) RequiresSecrets() bool {
	return e == CI || e == Production
}
