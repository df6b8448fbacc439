// cmd/phonecrawl/main.go
package main

import (
	"github.com/law-makers/phonecrawl/internal/cli"
)

func main() {
	// Signal handling and app initialization happen inside cli.Execute
	cli.Execute()
}
