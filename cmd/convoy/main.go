package main

import (
	convoycmd "github.com/convoy-rl/convoy/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	convoycmd.SetVersionInfo(version, commit)
	convoycmd.Execute()
}
