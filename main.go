package main

import "taskdeck.com/taskdeck/cmd"

func main() {
	cmd.Execute()
}
