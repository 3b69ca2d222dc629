package main

import "github.com/softdesk/tracker/cmd"

func main() {
	cmd.Execute()
}
