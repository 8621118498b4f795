package main

import "github.com/zhm/ry/cmd/ry/internal"

func main() {
	internal.Execute()
}
