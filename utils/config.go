package utils

import "github.com/teamdoneez-lab/core-crest-69848-sub002/config"

// IsProduction reports whether the app runs with ENV=production.
func IsProduction() bool {
	return config.IsProduction()
}
