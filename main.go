/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/dronet-sim/dronet/cmd"

func main() {
	cmd.Execute()
}
