package formatter

import (
	"github.com/akili-ai/akili-cli/pkg/output"
	"github.com/fatih/color"
)

var (
	// Colors for inline emphasis
	Bold    = color.New(color.Bold)
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Warning = color.New(color.FgYellow)
)

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	output.PrintSuccess(format, args...)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	output.PrintError(format, args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	output.PrintInfo(format, args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	output.PrintWarning(format, args...)
}

// PrintTable prints data as a table
func PrintTable(items interface{}, headers []string, rows [][]string) {
	output.PrintList(items, headers, rows)
}

// PrintKeyValue prints a record as key: value lines
func PrintKeyValue(record map[string]interface{}) {
	output.PrintKeyValue(record)
}

// PrintObject prints an object based on output format
func PrintObject(data interface{}, name string) error {
	return output.Print(name, data)
}
