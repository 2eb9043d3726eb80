package main

import "civiceye/cmd"

func main() {
	cmd.Execute()
}
