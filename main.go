package main

import "github.com/s-lunowa/yaourt-fem-dg/cmd"

func main() {
	cmd.Execute()
}
