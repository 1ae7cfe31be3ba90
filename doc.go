// Package assets provides reference-counted asset handles and a path-keyed
// cache that loads each asset once and shares it between all callers.
//
// # Overview
//
// The package is built from three layers:
//   - Handle: a shared count plus the identity (path) of the asset it refers to
//   - Resource[T]: a Handle paired with the decoded payload of type *T
//   - Cache[T]: a map from identity to live resources that deduplicates loads
//
// A Library groups one Cache per payload type and plugs into the lifecycle
// dispatcher in package module.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/assets"
//	    "github.com/gogpu/assets/texture"
//	)
//
//	root := assets.NewRoot("Assets")
//	textures := assets.New(root, texture.Decode)
//
//	tree, err := textures.Load("tree.png")
//	if err != nil {
//	    return err
//	}
//	defer tree.Release()
//
//	img := tree.Data().Pixels()
//
// # Ownership
//
// Every *Handle and *Resource[T] owns exactly one unit of its shared count.
// Clone adds a unit, Release drops it, and Move transfers it, leaving the
// source empty. When the count reaches zero the payload is released exactly
// once: through the release func given to NewResource, or through the
// payload's Close or Release method.
//
// Handles must be used through pointers. Copying a live Handle or Resource by
// value is detected and panics on the next use of the copy.
//
// # Identities
//
// An Identity is the slash-separated, NFC-normalized path of an asset relative
// to its Root. Different spellings of the same file ("a/../tree.png",
// "./tree.png") share one identity and therefore one cache entry.
//
// # Failure handling
//
// A failed load never leaves anything behind in the cache: the next Load for
// the same identity decodes from scratch. Missing assets report ErrNotFound
// without invoking the decoder, decoder failures report *DecodeError, and a
// Library request for an identity held by another kind reports
// *TypeMismatchError.
//
// # Thread Safety
//
// The baseline contract is single-threaded. Counts are nevertheless atomic and
// every cache guards its map with one mutex, so concurrent use does not
// corrupt state.
package assets
