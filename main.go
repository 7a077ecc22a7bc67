package main

import "github.com/mj1618/winhint/cmd"

func main() {
	cmd.Execute()
}
