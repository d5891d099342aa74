package main

import "github.com/akili-ai/akili-cli/internal/cmd"

func main() {
	cmd.Execute()
}
