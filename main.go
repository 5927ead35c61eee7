package main

import "github.com/msomdec/inkpost/internal/cli"

func main() {
	cli.Execute()
}
