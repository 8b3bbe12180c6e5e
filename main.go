package main

import "github.com/swgoh-tools/holotable/cmd"

func main() {
	cmd.Execute()
}
