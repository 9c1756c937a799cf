package main

import "github.com/salefront/salefront/cmd"

func main() {
	cmd.Execute()
}
