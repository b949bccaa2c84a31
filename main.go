package main

import "bulkunit/cmd"

func main() {
	cmd.Execute()
}
