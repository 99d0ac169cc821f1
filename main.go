package main

import "github.com/igafem/g1mp/cmd"

func main() {
	cmd.Execute()
}
