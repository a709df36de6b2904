package main

import "github.com/mcpotools/mcpoctl/internal/cli"

func main() {
	cli.Execute()
}
