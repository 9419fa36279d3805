package main

import "github.com/jsphweid/abcdex/cmd"

func main() {
	cmd.Execute()
}
