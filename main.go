package main

import "github.com/YangQing-Lin/mg-prompts/cmd"

func main() {
	cmd.Execute()
}
