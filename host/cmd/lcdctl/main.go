package main

import "lcdlink/host/cmd/lcdctl/commands"

func main() {
	commands.Execute()
}
