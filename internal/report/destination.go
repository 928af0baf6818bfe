package report

import (
	"fmt"
	"io"
	"os"
)

const destinationOpenErrorTemplateConstant = "unable to open report destination: %w"

// ResolveDestination returns the writer a report should stream to: the file
// at outputPath when one is configured, otherwise the fallback writer. The
// returned cleanup closes the file when one was opened.
func ResolveDestination(fallbackWriter io.Writer, outputPath string) (io.Writer, func(), error) {
	if len(outputPath) == 0 {
		return fallbackWriter, func() {}, nil
	}

	outputFile, openError := os.Create(outputPath)
	if openError != nil {
		return nil, nil, fmt.Errorf(destinationOpenErrorTemplateConstant, openError)
	}
	return outputFile, func() { _ = outputFile.Close() }, nil
}
