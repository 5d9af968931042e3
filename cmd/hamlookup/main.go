package main

import "hamlookup/cmd/hamlookup/cmd"

func main() {
	cmd.Execute()
}
