/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/ssargent/indextuple/cmd/itupctl/cmd"
)

func main() {
	cmd.Execute()
}
