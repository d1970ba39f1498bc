package main

import (
	"fuelcast/internal/cli"
)

func main() {
	cli.Execute()
}
