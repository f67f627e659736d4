package validation

import (
	"fmt"

	"github.com/adiorany3/ransumruminansia/pkg/constants"
)

// ValidateOutputFormat checks that the output format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	}
	return fmt.Errorf("invalid output format: %s (valid formats: %s, %s)",
		format, constants.OutputFormatPretty, constants.OutputFormatCSV)
}

// ValidateMode checks that the application mode is supported.
func ValidateMode(mode string) error {
	switch mode {
	case constants.ModeManual, constants.ModeOptimize, constants.ModeMinerals:
		return nil
	}
	return fmt.Errorf("invalid mode: %s (valid modes: %s, %s, %s)",
		mode, constants.ModeManual, constants.ModeOptimize, constants.ModeMinerals)
}
