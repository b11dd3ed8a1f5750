package main

import "github.com/storelens/storelens-cli/cmd"

func main() {
	cmd.Execute()
}
