package main

import "clipcast/cmd"

func main() {
	cmd.Execute()
}
