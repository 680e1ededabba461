package cli

import "github.com/fatih/color"

// Output colors shared by the helperctl commands.
var (
	infoColor    = color.New(color.FgCyan).SprintFunc()
	successColor = color.New(color.FgGreen).SprintFunc()
	warningColor = color.New(color.FgYellow).SprintFunc()
	headerColor  = color.New(color.FgGreen, color.Bold).SprintFunc()
)
