package main

import "github.com/quayside-labs/walletkit/cmd"

func main() {
	cmd.Execute()
}
