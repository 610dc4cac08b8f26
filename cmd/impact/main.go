// Command impact indexes Git history per author and serves contributor
// tables, impact charts and author details.
package main

import (
	"github.com/huangsam/impact/cmd"
	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/internal/iocache"
)

func main() {
	defer iocache.CloseStore()
	err := cmd.Execute()
	_ = cmd.Logger().Sync()
	if err != nil {
		iocache.CloseStore()
		contract.LogFatal("impact", err)
	}
}
