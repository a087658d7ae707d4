package main

import "github.com/jmg/scrabbly/internal/cli"

func main() {
	cli.Execute()
}
