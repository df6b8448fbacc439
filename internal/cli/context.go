// Package cli provides the command-line interface for the phonecrawl application.
package cli

import (
	"github.com/law-makers/phonecrawl/internal/app"
	"github.com/spf13/cobra"
)

// skipAppAnnotation marks commands that run without the application container
const skipAppAnnotation = "phonecrawl/skip-app"

// current is the application for the running command; one command runs per process
var current *app.Application

// SetApp stores the Application for the running command
func SetApp(cmd *cobra.Command, a *app.Application) {
	if cmd == nil {
		return
	}
	current = a
}

// GetAppFromCmd returns the Application initialized for cmd, or nil
func GetAppFromCmd(cmd *cobra.Command) *app.Application {
	if cmd == nil {
		return nil
	}
	return current
}

func needsApp(cmd *cobra.Command) bool {
	_, skip := cmd.Annotations[skipAppAnnotation]
	return !skip
}
