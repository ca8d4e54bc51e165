package main

import "github.com/motolab/tuner/pkg/cli"

func main() {
	cli.Execute()
}
