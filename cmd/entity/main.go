package main

import "github.com/moonstream-to/entity/cmd/entity/cmd"

func main() {
	cmd.Execute()
}
