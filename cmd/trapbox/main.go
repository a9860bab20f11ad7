package main

import "github.com/chazu/trapbox/cmd/trapbox/cmd"

func main() {
	cmd.Execute()
}
