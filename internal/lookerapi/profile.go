package lookerapi

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultRequestTimeoutConstant     = 600 * time.Second
	profileReadErrorTemplateConstant  = "unable to read connection profile: %w"
	profileParseErrorTemplateConstant = "unable to parse connection profile: %w"
	apiPortSeparatorConstant          = ":"
	urlSchemeSeparatorConstant        = "://"
)

var (
	errProfileBaseURLRequired     = errors.New("connection profile requires base_url")
	errProfileCredentialsRequired = errors.New("connection profile requires client_id and client_secret")
)

// Profile holds the connection settings for one Looker instance, loaded from a
// YAML file in place of the SDK's looker.ini.
type Profile struct {
	BaseURL        string        `yaml:"base_url"`
	ClientID       string        `yaml:"client_id"`
	ClientSecret   string        `yaml:"client_secret"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// LoadProfile reads and validates a connection profile file.
func LoadProfile(profilePath string) (Profile, error) {
	profileData, readError := os.ReadFile(profilePath)
	if readError != nil {
		return Profile{}, fmt.Errorf(profileReadErrorTemplateConstant, readError)
	}

	var profile Profile
	if parseError := yaml.Unmarshal(profileData, &profile); parseError != nil {
		return Profile{}, fmt.Errorf(profileParseErrorTemplateConstant, parseError)
	}

	if validationError := profile.Validate(); validationError != nil {
		return Profile{}, validationError
	}

	if profile.RequestTimeout <= 0 {
		profile.RequestTimeout = defaultRequestTimeoutConstant
	}

	return profile, nil
}

// Validate reports whether the profile carries the required fields.
func (profile Profile) Validate() error {
	if len(strings.TrimSpace(profile.BaseURL)) == 0 {
		return errProfileBaseURLRequired
	}
	if len(strings.TrimSpace(profile.ClientID)) == 0 || len(strings.TrimSpace(profile.ClientSecret)) == 0 {
		return errProfileCredentialsRequired
	}
	return nil
}

// ReportBaseURL derives the browser-facing instance URL used in report links
// by stripping the API port from the configured base URL.
func (profile Profile) ReportBaseURL() string {
	trimmedURL := strings.TrimRight(strings.TrimSpace(profile.BaseURL), "/")

	schemeIndex := strings.Index(trimmedURL, urlSchemeSeparatorConstant)
	hostStart := 0
	if schemeIndex >= 0 {
		hostStart = schemeIndex + len(urlSchemeSeparatorConstant)
	}

	portIndex := strings.Index(trimmedURL[hostStart:], apiPortSeparatorConstant)
	if portIndex < 0 {
		return trimmedURL
	}
	return trimmedURL[:hostStart+portIndex]
}
