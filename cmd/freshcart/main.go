package main

import "freshcart/cmd/freshcart/commands"

func main() {
	commands.Execute()
}
