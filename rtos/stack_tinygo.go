//go:build tinygo

package rtos

// Stack capture is unavailable on TinyGo targets.
func captureStack() []byte {
	return nil
}
