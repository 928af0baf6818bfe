package broken

import "strings"

const (
	defaultProfilePathConstant          = "looker.yaml"
	configurationProfileSuffixConstant  = ".profile"
	configurationOutputKeySuffixLiteral = ".output"
)

// CommandConfiguration captures persistent settings for the broken command.
type CommandConfiguration struct {
	ProfilePath string `mapstructure:"profile"`
	Output      string `mapstructure:"output"`
}

// DefaultCommandConfiguration returns baseline configuration values for the
// broken command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ProfilePath: defaultProfilePathConstant,
	}
}

// DefaultConfigurationValues exposes defaults for registration with the
// configuration loader under the provided key prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + configurationProfileSuffixConstant:  defaultProfilePathConstant,
		configurationKeyPrefix + configurationOutputKeySuffixLiteral: "",
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.ProfilePath = strings.TrimSpace(configuration.ProfilePath)
	if len(sanitized.ProfilePath) == 0 {
		sanitized.ProfilePath = defaultProfilePathConstant
	}
	sanitized.Output = strings.TrimSpace(configuration.Output)
	return sanitized
}
