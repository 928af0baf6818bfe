package unused

import "strings"

const (
	defaultDaysThresholdConstant        = 90
	defaultProfilePathConstant          = "looker.yaml"
	configurationDaysKeySuffixConstant  = ".days"
	configurationProfileSuffixConstant  = ".profile"
	configurationOutputKeySuffixLiteral = ".output"
	configurationModelsSuffixConstant   = ".models"
)

// CommandConfiguration captures persistent settings for the unused command.
type CommandConfiguration struct {
	ProfilePath string `mapstructure:"profile"`
	Days        int    `mapstructure:"days"`
	Output      string `mapstructure:"output"`
	Models      bool   `mapstructure:"models"`
}

// DefaultCommandConfiguration returns baseline configuration values for the
// unused command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ProfilePath: defaultProfilePathConstant,
		Days:        defaultDaysThresholdConstant,
	}
}

// DefaultConfigurationValues exposes defaults for registration with the
// configuration loader under the provided key prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + configurationProfileSuffixConstant:  defaultProfilePathConstant,
		configurationKeyPrefix + configurationDaysKeySuffixConstant:  defaultDaysThresholdConstant,
		configurationKeyPrefix + configurationOutputKeySuffixLiteral: "",
		configurationKeyPrefix + configurationModelsSuffixConstant:   false,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.ProfilePath = strings.TrimSpace(configuration.ProfilePath)
	if len(sanitized.ProfilePath) == 0 {
		sanitized.ProfilePath = defaultProfilePathConstant
	}
	if sanitized.Days <= 0 {
		sanitized.Days = defaultDaysThresholdConstant
	}
	sanitized.Output = strings.TrimSpace(configuration.Output)
	return sanitized
}
