// main is the entry point for the ctexpand CLI.
package main

import (
	"github.com/huangsam/ctexpand/cmd"
	"github.com/huangsam/ctexpand/internal/contract"
	"github.com/huangsam/ctexpand/internal/iocache"
)

func main() {
	cmd.SetStoreManager(iocache.Manager)

	err := cmd.Execute()

	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	iocache.CloseStores()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
