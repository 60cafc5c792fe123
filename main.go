package main

import "github.com/samsaffron/md2blocks/cmd"

func main() {
	cmd.Execute()
}
