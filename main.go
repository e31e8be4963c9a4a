package main

import "github.com/Taichi-iskw/ytmeta/cmd"

func main() {
	cmd.Execute()
}
