package main

import "customer-reviews/cmd"

func main() {
	cmd.Execute()
}
