// Command ruminate answers questions from a project's local documentation.
package main

import (
	"github.com/lodestone-labs/ruminate-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
