package main

import "github.com/ssargent/framewire/cmd/framewire/cmd"

func main() {
	cmd.Execute()
}
