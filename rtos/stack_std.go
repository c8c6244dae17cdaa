//go:build !tinygo

package rtos

import "runtime/debug"

func captureStack() []byte {
	return debug.Stack()
}
