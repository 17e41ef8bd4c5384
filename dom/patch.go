package dom

import (
	"fmt"

	"github.com/signadot/xdom/debug"

	jsonpatch "github.com/evanphx/json-patch"
)

// Patch applies an RFC 6902 JSON patch to the JSON view of n and returns
// the resulting tree. n is not modified.
func Patch(n *Node, patch []byte) (*Node, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("invalid json patch: %w", err)
	}
	if debug.Patch() {
		debug.Logf("json patch with %d ops on %s\n", len(ops), n.Path())
	}
	d, err := ToJSON(n, "")
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, err
	}
	return FromJSON(out)
}

// MergePatch applies an RFC 7386 merge patch to the JSON view of n.
func MergePatch(n *Node, patch []byte) (*Node, error) {
	d, err := ToJSON(n, "")
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, patch)
	if err != nil {
		return nil, err
	}
	return FromJSON(out)
}
