package main

import "github.com/fakeyudi/qna/cmd"

func main() {
	cmd.Execute()
}
