package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

const (
	headerWriteErrorTemplateConstant = "unable to write report header: %w"
	rowWriteErrorTemplateConstant    = "unable to write report row: %w"
	flushErrorTemplateConstant       = "unable to flush report: %w"
	columnMismatchTemplateConstant   = "report row has %d columns, header has %d"
)

// Sink writes CSV rows beneath a fixed header. Rows whose width differs from
// the header are rejected so the emitted file always parses as a uniform
// table. Write failures are fatal for the run; no partial-write recovery is
// attempted.
type Sink struct {
	csvWriter   *csv.Writer
	header      []string
	wroteHeader bool
}

// NewSink constructs a sink emitting to outputWriter with the provided header.
func NewSink(outputWriter io.Writer, header []string) *Sink {
	duplicatedHeader := make([]string, len(header))
	copy(duplicatedHeader, header)

	return &Sink{
		csvWriter: csv.NewWriter(outputWriter),
		header:    duplicatedHeader,
	}
}

// WriteRow appends one row, writing the header first on the initial call.
func (sink *Sink) WriteRow(values []string) error {
	if len(values) != len(sink.header) {
		return fmt.Errorf(columnMismatchTemplateConstant, len(values), len(sink.header))
	}

	if !sink.wroteHeader {
		if headerError := sink.csvWriter.Write(sink.header); headerError != nil {
			return fmt.Errorf(headerWriteErrorTemplateConstant, headerError)
		}
		sink.wroteHeader = true
	}

	if writeError := sink.csvWriter.Write(values); writeError != nil {
		return fmt.Errorf(rowWriteErrorTemplateConstant, writeError)
	}
	return nil
}

// Flush drains buffered rows to the destination and surfaces any write error.
// An empty report still emits the header so downstream consumers see the
// column set.
func (sink *Sink) Flush() error {
	if !sink.wroteHeader {
		if headerError := sink.csvWriter.Write(sink.header); headerError != nil {
			return fmt.Errorf(headerWriteErrorTemplateConstant, headerError)
		}
		sink.wroteHeader = true
	}

	sink.csvWriter.Flush()
	if flushError := sink.csvWriter.Error(); flushError != nil {
		return fmt.Errorf(flushErrorTemplateConstant, flushError)
	}
	return nil
}
