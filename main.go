package main

import "github.com/minicloud/portal/cmd"

func main() {
	cmd.Execute()
}
