package main

import "github.com/dmitrymomot/brandkit/cmd/brandkit"

func main() {
	brandkit.Execute()
}
