package main

import "github.com/edikit/edikit/cmd"

func main() {
	cmd.Execute()
}
