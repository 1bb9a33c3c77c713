package blockcache

import (
	"fmt"
	"strings"
)

// KeySpec names the logical query a loader answers. A static key has the
// argument fingerprint appended to it; a key function must itself produce a
// distinct key for every argument list that needs a distinct result.
type KeySpec struct {
	name string
	fn   func(args ...any) string
}

// StaticKey returns a KeySpec with a fixed logical name.
func StaticKey(name string) KeySpec {
	return KeySpec{name: name}
}

// KeyFunc returns a KeySpec that derives the logical key from the arguments.
// No fingerprint is appended, so arguments mapping to the same string share a
// cached result.
func KeyFunc(fn func(args ...any) string) KeySpec {
	return KeySpec{fn: fn}
}

// KeyFunc1 is KeyFunc for single argument loaders.
func KeyFunc1[A any](fn func(A) string) KeySpec {
	return KeyFunc(func(args ...any) string {
		return fn(args[0].(A))
	})
}

// KeyFunc2 is KeyFunc for two argument loaders.
func KeyFunc2[A, B any](fn func(A, B) string) KeySpec {
	return KeyFunc(func(args ...any) string {
		return fn(args[0].(A), args[1].(B))
	})
}

// KeyFunc3 is KeyFunc for three argument loaders.
func KeyFunc3[A, B, C any](fn func(A, B, C) string) KeySpec {
	return KeyFunc(func(args ...any) string {
		return fn(args[0].(A), args[1].(B), args[2].(C))
	})
}

// IsStatic reports whether the spec is a fixed name.
func (s KeySpec) IsStatic() bool {
	return s.fn == nil
}

func (s KeySpec) String() string {
	if s.IsStatic() {
		return s.name
	}
	return "<func>"
}

// BuildKey joins the parts of a cache key:
// {network}:{block}:{logicalKey}{argSuffix}
func BuildKey(network string, block string, logicalKey string, argSuffix string) string {
	return strings.Join([]string{network, block, logicalKey}, ":") + argSuffix
}

// Key computes the cache key a wrapped loader uses for args.
func (c *Context) Key(spec KeySpec, args ...any) (string, error) {
	if !spec.IsStatic() {
		return BuildKey(c.Network, c.Block, spec.fn(args...), ""), nil
	}

	var suffix string
	if len(args) > 0 {
		fingerprint, err := c.fingerprinter().Fingerprint(args)
		if err != nil {
			return "", fmt.Errorf("can't fingerprint arguments for %s: %w", spec.name, err)
		}
		suffix = ":" + fingerprint
	}

	return BuildKey(c.Network, c.Block, spec.name, suffix), nil
}
