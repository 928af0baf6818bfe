package cleanup_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lookbench/lookaudit/internal/cleanup"
)

type recordingMutator struct {
	deletedDashboards []string
	deletedLooks      []string
	failingIDs        map[string]error
}

func (mutator *recordingMutator) SetDashboardDeleted(executionContext context.Context, dashboardID string, deleted bool) error {
	if failure, exists := mutator.failingIDs[dashboardID]; exists {
		return failure
	}
	mutator.deletedDashboards = append(mutator.deletedDashboards, dashboardID)
	return nil
}

func (mutator *recordingMutator) SetLookDeleted(executionContext context.Context, lookID string, deleted bool) error {
	if failure, exists := mutator.failingIDs[lookID]; exists {
		return failure
	}
	mutator.deletedLooks = append(mutator.deletedLooks, lookID)
	return nil
}

func TestServiceRunDeletesConfirmedContent(testInstance *testing.T) {
	mutator := &recordingMutator{}
	outputBuffer := &bytes.Buffer{}
	prompter := cleanup.NewIOConfirmationPrompter(strings.NewReader("y\ny\nn\n"), outputBuffer)
	service := cleanup.NewService(mutator, prompter, outputBuffer, &bytes.Buffer{}, nil)

	options := cleanup.CommandOptions{
		DashboardIDs: []string{"1", "2"},
		LookIDs:      []string{"9"},
	}
	require.NoError(testInstance, service.Run(context.Background(), options))

	require.Equal(testInstance, []string{"1", "2"}, mutator.deletedDashboards)
	require.Empty(testInstance, mutator.deletedLooks)
	require.Contains(testInstance, outputBuffer.String(), "Skipped look 9")
}

func TestServiceRunDryRunTouchesNothing(testInstance *testing.T) {
	mutator := &recordingMutator{}
	outputBuffer := &bytes.Buffer{}
	service := cleanup.NewService(mutator, nil, outputBuffer, &bytes.Buffer{}, nil)

	options := cleanup.CommandOptions{
		DashboardIDs: []string{"1"},
		LookIDs:      []string{"9"},
		DryRun:       true,
	}
	require.NoError(testInstance, service.Run(context.Background(), options))

	require.Empty(testInstance, mutator.deletedDashboards)
	require.Empty(testInstance, mutator.deletedLooks)
	require.Contains(testInstance, outputBuffer.String(), "PLAN: would soft delete dashboard 1")
	require.Contains(testInstance, outputBuffer.String(), "PLAN: would soft delete look 9")
}

func TestServiceRunContinuesAfterFailure(testInstance *testing.T) {
	mutator := &recordingMutator{
		failingIDs: map[string]error{"1": errors.New("permission denied")},
	}
	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	service := cleanup.NewService(mutator, nil, outputBuffer, errorBuffer, nil)

	options := cleanup.CommandOptions{
		DashboardIDs: []string{"1", "2"},
		AssumeYes:    true,
	}
	require.NoError(testInstance, service.Run(context.Background(), options))

	require.Equal(testInstance, []string{"2"}, mutator.deletedDashboards)
	require.Contains(testInstance, errorBuffer.String(), "Failed to soft delete dashboard 1")
}
