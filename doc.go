// Package banner resolves packaged HTML5 banner ads entirely in memory.
//
// A banner bundle is a zip archive exported by Adobe Animate or Google Web
// Designer. ParseFile locates the bundle's root HTML document, rewrites
// every reference to an asset inside the archive so it points at a
// materialized resource handle instead of a relative path, and returns the
// handle of the rewritten document. Nothing is written to disk and nothing
// is fetched over the network.
//
// # Quick Start
//
// Resolve a bundle against the package's default in-memory store:
//
//	handle, err := banner.ParseFile(bundle)
//	if err != nil {
//	    return err
//	}
//	doc, _ := banner.DefaultStore().Lookup(handle)
//
// Serve the result from an HTTP host:
//
//	store := memory.New(memory.WithPrefix("http://localhost:8080/r/"))
//	mux.Handle("/r/", bannerhttp.NewHandler(store))
//	p := banner.New(banner.WithMaterializer(store))
//	res, err := p.Parse(bundle)
//
// # Formats
//
// Documents containing gwd-image elements are treated as Google Web
// Designer output: each element's source attribute is replaced when it
// exactly names an archive entry. Everything else is treated as Adobe
// Animate output: each src attribute naming an entry is replaced with a
// handle to that entry, after the createjs asset manifest embedded in it
// (if any) has had its asset sources replaced with handles too.
//
// # Crash Reporting
//
// Hosts that want panics reported before the process (or wasm instance)
// dies call Initialize once before the first parse.
package banner
