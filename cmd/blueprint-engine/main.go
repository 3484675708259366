package main

import "blueprint-engine/internal/cli"

func main() {
	cli.Execute()
}
