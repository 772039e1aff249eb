package main

import "github.com/agentshield/agentshield/cmd"

func main() {
	cmd.Execute()
}
