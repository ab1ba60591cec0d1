package main

import "github.com/hydrakv/hydrakv-go/cmd"

func main() {
	cmd.Execute()
}
