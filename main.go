package main

import "github.com/codepane-dev/codepane/cmd"

func main() {
	cmd.Execute()
}
