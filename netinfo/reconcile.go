package netinfo

import (
	"github.com/yllada/ip-applet/common"
	"github.com/yllada/ip-applet/config"
)

// Reconcile merges an observation into the known interface order.
//
// Names in observed that are not in known are enabled in prefs and returned
// in added. The next order keeps the surviving names of known in place and
// appends new names in ascending order. A name that vanishes is forgotten, so
// when it comes back it is appended at the end.
func Reconcile(known []string, observed map[string]string, prefs *config.Preferences) (next, added []string) {
	names := common.SortedKeys(observed)

	for _, name := range names {
		if !common.StringInSlice(name, known) {
			prefs.Enable(name)
			added = append(added, name)
		}
	}

	next = make([]string, 0, len(names))
	for _, name := range known {
		if _, ok := observed[name]; ok && !common.StringInSlice(name, next) {
			next = append(next, name)
		}
	}
	for _, name := range names {
		if !common.StringInSlice(name, next) {
			next = append(next, name)
		}
	}

	return next, added
}
