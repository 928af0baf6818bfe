package report_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lookbench/lookaudit/internal/report"
)

type failingWriter struct{}

func (failingWriter) Write(payload []byte) (int, error) {
	return 0, errors.New("destination unavailable")
}

func TestSinkWritesHeaderAndRows(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	sink := report.NewSink(outputBuffer, []string{"id", "title"})

	require.NoError(testInstance, sink.WriteRow([]string{"1", "Revenue"}))
	require.NoError(testInstance, sink.WriteRow([]string{"2", "Churn"}))
	require.NoError(testInstance, sink.Flush())

	require.Equal(testInstance, "id,title\n1,Revenue\n2,Churn\n", outputBuffer.String())
}

func TestSinkEmitsHeaderForEmptyReport(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	sink := report.NewSink(outputBuffer, []string{"id", "title"})

	require.NoError(testInstance, sink.Flush())
	require.Equal(testInstance, "id,title\n", outputBuffer.String())
}

func TestSinkRejectsMismatchedRowWidth(testInstance *testing.T) {
	sink := report.NewSink(&bytes.Buffer{}, []string{"id", "title"})

	writeError := sink.WriteRow([]string{"1"})
	require.Error(testInstance, writeError)
}

func TestSinkSurfacesDestinationFailure(testInstance *testing.T) {
	sink := report.NewSink(failingWriter{}, []string{"id"})

	require.NoError(testInstance, sink.WriteRow([]string{"1"}))
	require.Error(testInstance, sink.Flush())
}
