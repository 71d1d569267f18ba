//go:build js && wasm

// Command bannerwasm exposes the banner resolver to a browser host.
//
// It registers two functions on the JS global object:
//
//	initialize()                       // install crash reporting
//	parseFile(bytes: Uint8Array)       // Promise<string>, the document's blob URL
//
// A failed parse rejects the promise with an Error. Every resource is
// materialized as a Blob and addressed through URL.createObjectURL; the
// host owns those URLs and revokes them when the banner is unloaded.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/meigma/banner"
)

var errNotBytes = errors.New("parseFile: expected a Uint8Array argument")

// blobMaterializer registers content as browser Blob object URLs.
type blobMaterializer struct{}

func (blobMaterializer) Materialize(data []byte, mimeType string) (string, error) {
	arr := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(arr, data)

	parts := js.Global().Get("Array").New(arr)
	opts := js.Global().Get("Object").New()
	opts.Set("type", mimeType)
	blob := js.Global().Get("Blob").New(parts, opts)

	url := js.Global().Get("URL").Call("createObjectURL", blob)
	if url.Type() != js.TypeString {
		return "", fmt.Errorf("createObjectURL returned %s", url.Type())
	}
	return url.String(), nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	parser := banner.New(
		banner.WithMaterializer(blobMaterializer{}),
		banner.WithLogger(logger),
	)

	js.Global().Set("initialize", js.FuncOf(func(js.Value, []js.Value) any {
		banner.Initialize(banner.WithReportLogger(logger))
		return js.Undefined()
	}))
	js.Global().Set("parseFile", js.FuncOf(func(_ js.Value, args []js.Value) any {
		return promise(func() (any, error) {
			data, err := bytesArg(args)
			if err != nil {
				return nil, err
			}
			return parser.ParseFile(data)
		})
	}))

	select {}
}

// bytesArg copies the first argument, which must be a Uint8Array.
func bytesArg(args []js.Value) ([]byte, error) {
	if len(args) < 1 || !args[0].InstanceOf(js.Global().Get("Uint8Array")) {
		return nil, errNotBytes
	}
	data := make([]byte, args[0].Get("length").Int())
	js.CopyBytesToGo(data, args[0])
	return data, nil
}

// promise runs fn off the event loop and settles a JS Promise with its
// outcome. Errors reject with an Error carrying the Go message.
func promise(fn func() (any, error)) js.Value {
	var executor js.Func
	executor = js.FuncOf(func(_ js.Value, args []js.Value) any {
		resolve, reject := args[0], args[1]
		go func() {
			defer executor.Release()
			v, err := fn()
			if err != nil {
				reject.Invoke(js.Global().Get("Error").New(err.Error()))
				return
			}
			resolve.Invoke(v)
		}()
		return nil
	})
	return js.Global().Get("Promise").New(executor)
}
