//go:build !linux

package dv

import "os"

func adviseSequential(*os.File) {}
