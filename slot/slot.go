// Package slot reports the module slot the script is mounted on. Scripts that do not run
// for a module get ok == false from every query.
package slot

import "github.com/lotus-sim/lotus-script-go/sys"

func fromIndex(i int32) (int32, bool) {
	if i == -1 {
		return 0, false
	}
	return i, true
}

// CockpitIndex returns the cockpit index of the module slot.
func CockpitIndex() (int32, bool) {
	return fromIndex(sys.Imports().ModuleSlotCockpitIndex())
}

// IndexInClassGroup returns the index of the slot within its class group.
func IndexInClassGroup() (int32, bool) {
	return fromIndex(sys.Imports().ModuleSlotIndexInClassGroup())
}

// Index returns the index of the module slot.
func Index() (int32, bool) {
	return fromIndex(sys.Imports().ModuleSlotIndex())
}
