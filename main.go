package main

import "github.com/ptalbot/ptal/cmd"

func main() {
	cmd.Execute()
}
