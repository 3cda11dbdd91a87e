package main

import "github.com/chartlight/chartlight/cmd"

func main() {
	cmd.Execute()
}
