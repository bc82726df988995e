// Command viz3d shows triangle meshes and height fields in an OpenGL window.
package main

import (
	"context"
	"runtime"

	"github.com/xlab/closer"
)

func init() {
	// GLFW and the GL context must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		closer.Exit(1)
	}
	closer.Close()
}
