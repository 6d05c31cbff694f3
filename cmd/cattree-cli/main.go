package main

import "cattree/cmd/cattree-cli/cmd"

func main() {
	cmd.Execute()
}
