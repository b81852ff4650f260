package main

import "github.com/mcoot/upmpoly/internal/cli"

func main() {
	cli.Execute()
}
