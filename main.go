// Package main is the entry point for the userportal CLI application.
package main

import (
	"userportal/cli/cmd"
)

func main() {
	cmd.Execute()
}
