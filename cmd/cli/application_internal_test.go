package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testUnusedCommandNameConstant      = "unused"
	testBrokenCommandNameConstant      = "broken"
	testCleanupCommandNameConstant     = "cleanup"
	testConfigurationFileNameConstant  = "config.yaml"
	testConfigurationContentConstant   = "common:\n  log_level: warn\ntools:\n  unused:\n    days: 30\n    profile: /etc/lookaudit/looker.yaml\n  cleanup:\n    dashboards:\n      - \"11\"\n"
	testDefaultLogLevelValueConstant   = "info"
	testDefaultLogFormatValueConstant  = "structured"
	testOverriddenLogLevelFlagConstant = "debug"
	testDefaultProfilePathConstant     = "looker.yaml"
)

// changeTestWorkingDirectory mirrors testing.T.Chdir, which is unavailable on
// the Go 1.21 toolchain used to run these tests.
func changeTestWorkingDirectory(testInstance *testing.T, targetDirectory string) {
	testInstance.Helper()
	originalDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	require.NoError(testInstance, os.Chdir(targetDirectory))
	testInstance.Cleanup(func() {
		require.NoError(testInstance, os.Chdir(originalDirectory))
	})
}

func TestNewApplicationRegistersSubcommands(testInstance *testing.T) {
	application := NewApplication()

	registeredCommandNames := map[string]bool{}
	for _, registeredCommand := range application.rootCommand.Commands() {
		registeredCommandNames[registeredCommand.Name()] = true
	}

	require.True(testInstance, registeredCommandNames[testUnusedCommandNameConstant])
	require.True(testInstance, registeredCommandNames[testBrokenCommandNameConstant])
	require.True(testInstance, registeredCommandNames[testCleanupCommandNameConstant])
}

func TestInitializeConfigurationAppliesDefaults(testInstance *testing.T) {
	changeTestWorkingDirectory(testInstance, testInstance.TempDir())

	application := NewApplication()
	initializationError := application.initializeConfiguration(application.rootCommand)
	require.NoError(testInstance, initializationError)

	require.Equal(testInstance, testDefaultLogLevelValueConstant, application.configuration.Common.LogLevel)
	require.Equal(testInstance, testDefaultLogFormatValueConstant, application.configuration.Common.LogFormat)
	require.Equal(testInstance, testDefaultProfilePathConstant, application.configuration.Tools.Unused.ProfilePath)
	require.Equal(testInstance, 90, application.configuration.Tools.Unused.Days)
	require.Equal(testInstance, testDefaultProfilePathConstant, application.configuration.Tools.Broken.ProfilePath)
	require.Empty(testInstance, application.configuration.Tools.Cleanup.Dashboards)
}

func TestInitializeConfigurationReadsConfigurationFile(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(temporaryDirectory, testConfigurationFileNameConstant)
	writeError := os.WriteFile(configurationFilePath, []byte(testConfigurationContentConstant), 0o600)
	require.NoError(testInstance, writeError)

	application := NewApplication()
	application.configurationFilePath = configurationFilePath

	initializationError := application.initializeConfiguration(application.rootCommand)
	require.NoError(testInstance, initializationError)

	require.Equal(testInstance, "warn", application.configuration.Common.LogLevel)
	require.Equal(testInstance, 30, application.configuration.Tools.Unused.Days)
	require.Equal(testInstance, "/etc/lookaudit/looker.yaml", application.configuration.Tools.Unused.ProfilePath)
	require.Equal(testInstance, []string{"11"}, application.configuration.Tools.Cleanup.Dashboards)
	require.Equal(testInstance, configurationFilePath, application.configurationMetadata.ConfigFileUsed)
}

func TestInitializeConfigurationHonorsFlagOverrides(testInstance *testing.T) {
	changeTestWorkingDirectory(testInstance, testInstance.TempDir())

	application := NewApplication()
	flagSetError := application.rootCommand.PersistentFlags().Set(logLevelFlagNameConstant, testOverriddenLogLevelFlagConstant)
	require.NoError(testInstance, flagSetError)

	initializationError := application.initializeConfiguration(application.rootCommand)
	require.NoError(testInstance, initializationError)

	require.Equal(testInstance, testOverriddenLogLevelFlagConstant, application.configuration.Common.LogLevel)
}
