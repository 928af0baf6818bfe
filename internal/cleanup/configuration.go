package cleanup

import "strings"

const (
	defaultProfilePathConstant            = "looker.yaml"
	configurationProfileSuffixConstant    = ".profile"
	configurationDashboardsSuffixConstant = ".dashboards"
	configurationLooksKeySuffixConstant   = ".looks"
)

// CommandConfiguration captures persistent settings for the cleanup command.
type CommandConfiguration struct {
	ProfilePath string   `mapstructure:"profile"`
	Dashboards  []string `mapstructure:"dashboards"`
	Looks       []string `mapstructure:"looks"`
}

// DefaultCommandConfiguration returns baseline configuration values for the
// cleanup command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ProfilePath: defaultProfilePathConstant,
	}
}

// DefaultConfigurationValues exposes defaults for registration with the
// configuration loader under the provided key prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + configurationProfileSuffixConstant:    defaultProfilePathConstant,
		configurationKeyPrefix + configurationDashboardsSuffixConstant: []string(nil),
		configurationKeyPrefix + configurationLooksKeySuffixConstant:   []string(nil),
	}
}

// sanitize trims whitespace and drops empty identifiers.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.ProfilePath = strings.TrimSpace(configuration.ProfilePath)
	if len(sanitized.ProfilePath) == 0 {
		sanitized.ProfilePath = defaultProfilePathConstant
	}
	sanitized.Dashboards = sanitizeIdentifiers(configuration.Dashboards)
	sanitized.Looks = sanitizeIdentifiers(configuration.Looks)
	return sanitized
}

func sanitizeIdentifiers(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for index := range raw {
		trimmed := strings.TrimSpace(raw[index])
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
