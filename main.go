package main

import "github.com/nubank/unibot/internal/cli"

func main() {
	cli.Execute()
}
