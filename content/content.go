// Package content identifies user-authored assets such as textures, fonts and script
// overrides.
package content

import "fmt"

// ID addresses a content item by author and item number.
type ID struct {
	UserID  int32   `json:"user_id"`
	SubID   int32   `json:"sub_id"`
	Version float64 `json:"version"`
}

// New returns an ID for the first version of an item.
func New(userID, subID int32) ID {
	return ID{UserID: userID, SubID: subID}
}

func (id ID) String() string {
	return fmt.Sprintf("%d:%d@%g", id.UserID, id.SubID, id.Version)
}
