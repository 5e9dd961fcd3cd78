// Package npm provides an HTTP client for the npm registry API.
//
// # Overview
//
// This package reads package documents from the npm registry
// (https://registry.npmjs.org) or any registry speaking the same protocol.
// Only the dist-tags are decoded; the per-version manifests in the document
// are ignored.
//
// # Usage
//
//	client := npm.NewClient("", "depscope-remote-analyzer", 10*time.Second)
//	latest, err := client.FetchLatest(ctx, "express")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("latest:", latest)
//
// Scoped names ("@types/node") are sent unescaped; the registry accepts
// both the raw and the %2F-encoded form.
package npm
