package main

import "carmarket/cmd"

func main() {
	cmd.Run()
}
