package main

import "github.com/Saai-Jaswant/God-Pill-Project-X/cmd/seed/commands"

func main() {
	commands.Execute()
}
