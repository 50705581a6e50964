// Command partchat is a terminal client for the PartSelect parts assistant.
package main

import "github.com/partselect/partchat/internal/commands"

func main() {
	commands.Execute()
}
