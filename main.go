package main

import "hlsx/cmd"

func main() {
	cmd.Execute()
}
