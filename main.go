package main

import "filmorate/cmd"

func main() {
	cmd.Execute()
}
