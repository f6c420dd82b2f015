package main

import "github.com/moonstream-to/entity/cmd/entityd/cmd"

func main() {
	cmd.Execute()
}
