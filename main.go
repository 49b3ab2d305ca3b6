package main

import "github.com/josephlewis42/microsh/cmd"

func main() {
	cmd.Execute()
}
