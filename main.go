package main

import "github.com/kestrelworks/listr-cli/cmd"

func main() {
	cmd.Execute()
}
