// Package collab merges element updates from other collaborators into the
// local scene. Transport is someone else's job; this package only decides
// which version of each element survives.
package collab

import (
	"github.com/bethropolis/chalk/internal/scene"
)

// Summary counts what happened to the remote elements of one update.
type Summary struct {
	Accepted  int
	Rejected  int
	Unchanged int
}

// ShouldDiscard reports whether the remote copy of an element loses against
// the local one. The local element wins when it is being edited, has a higher
// version, or has the same version and a nonce no greater than the remote's.
func ShouldDiscard(local, remote scene.Element, editingID string) bool {
	if local.ID == editingID {
		return true
	}
	if local.Version != remote.Version {
		return local.Version > remote.Version
	}
	return local.VersionNonce <= remote.VersionNonce
}

// Reconcile merges remote into local. Unknown remote elements are appended
// in the order received; known ones replace the local copy in place when
// they win.
func Reconcile(local, remote scene.Elements, editingID string) (scene.Elements, Summary) {
	var sum Summary
	out := local.Clone()
	for _, r := range remote {
		i := out.Index(r.ID)
		if i < 0 {
			out = append(out, r)
			sum.Accepted++
			continue
		}
		if out[i] == r {
			sum.Unchanged++
			continue
		}
		if ShouldDiscard(out[i], r, editingID) {
			sum.Rejected++
			continue
		}
		out[i] = r
		sum.Accepted++
	}
	return out, sum
}
