package main

import "github.com/darmiel/gatecheck/cmd"

func main() {
	cmd.Execute()
}
