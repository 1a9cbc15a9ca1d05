package main

import "github.com/sourcekite/symgold/internal/cli"

func main() {
	cli.Execute()
}
