package main

import "github.com/shotwatch/shotwatch/cmd"

func main() {
	cmd.Execute()
}
