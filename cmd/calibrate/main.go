package main

import "github.com/vaultrisk/calibration/cmd/cli"

func main() {
	cli.Execute()
}
