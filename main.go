package main

import "daytrack.com/daytrack/cmd"

func main() {
	cmd.Execute()
}
