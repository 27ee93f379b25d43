package main

import "github.com/go-arrower/classic-comedians/cmd"

func main() {
	cmd.Execute()
}
