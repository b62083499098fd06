package main

import "github.com/duelgrid/duelgrid/internal/cli"

func main() {
	cli.Execute()
}
