package main

import "github.com/getsavvyinc/webtoapk/cmd"

func main() {
	cmd.Execute()
}
