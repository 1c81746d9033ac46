package main

import "github.com/example/qreview/cmd"

func main() {
	cmd.Execute()
}
