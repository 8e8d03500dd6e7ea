package models

// Owned is implemented by every resource that resolves to a single owning user.
type Owned interface {
	OwnerID() uint
}

// BelongsTo reports whether resource is owned by userID. A nil resource
// belongs to nobody.
func BelongsTo(resource Owned, userID uint) bool {
	if resource == nil || userID == 0 {
		return false
	}
	return resource.OwnerID() == userID
}
