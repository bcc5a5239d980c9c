// Package main is the entrypoint for the newsboard API.
package main

import "github.com/GyroZepelix/newsboard/cmd/newsboard/commands"

func main() {
	commands.Execute()
}
