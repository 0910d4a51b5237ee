package main

import (
	"github.com/mcoot/bingo-challenge-go/internal/cli"
)

func main() {
	cli.Execute()
}
