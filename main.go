package main

import "github.com/gaurav-prasanna/crawlpage/cmd"

func main() {
	cmd.Execute()
}
