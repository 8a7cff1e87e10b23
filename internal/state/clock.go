package state

// uidClock hands out shape identifiers. Like a logical clock it only moves
// forward; a uid is never handed out twice until the scene is cleared.
type uidClock struct {
	next UID
}

func newUIDClock() uidClock {
	return uidClock{next: 1}
}

// Tick returns the next identifier.
func (c *uidClock) Tick() UID {
	uid := c.next
	c.next++
	return uid
}

// Reset starts counting from 1 again.
func (c *uidClock) Reset() {
	c.next = 1
}
