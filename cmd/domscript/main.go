package main

import "github.com/chrisuehlinger/domscript/cmd/domscript/cmd"

func main() {
	cmd.Execute()
}
