package quad

// resourceHandle identifies a slot in the canvas's resource arena.
// The generation counter guards against stale handles reaching a slot that
// has been freed and reused.
type resourceHandle struct {
	index uint32
	gen   uint32
}

// zero reports whether the handle is the null handle (the placeholder
// texture carries it).
func (h resourceHandle) zero() bool {
	return h == resourceHandle{}
}

// resourceSlot is one arena entry: a live backend texture plus the number of
// Texture handles sharing it.
type resourceSlot struct {
	id   TextureID
	refs int
	gen  uint32
	live bool
}

// resourceArena is the canvas-owned table of backend texture resources.
//
// The arena is the single owner of every backend texture: each texture is
// destroyed exactly once, either when its last referencing handle is
// released or when the canvas disposes the arena at shutdown, always before
// the backend itself is torn down.
type resourceArena struct {
	slots []resourceSlot
	free  []uint32
}

// insert stores a backend texture and returns its handle with one reference.
func (a *resourceArena) insert(id TextureID) resourceHandle {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		slot := &a.slots[idx]
		slot.id = id
		slot.refs = 1
		slot.live = true
		return resourceHandle{index: idx, gen: slot.gen}
	}
	// Generations start at 1 so the zero handle never matches a slot.
	a.slots = append(a.slots, resourceSlot{id: id, refs: 1, gen: 1, live: true})
	return resourceHandle{index: uint32(len(a.slots) - 1), gen: 1}
}

// lookup resolves a handle to its backend texture.
// Returns ok=false for the null handle, stale generations and freed slots.
func (a *resourceArena) lookup(h resourceHandle) (TextureID, bool) {
	if h.zero() || int(h.index) >= len(a.slots) {
		return InvalidTexture, false
	}
	slot := &a.slots[h.index]
	if !slot.live || slot.gen != h.gen {
		return InvalidTexture, false
	}
	return slot.id, true
}

// retain adds a reference to the slot the handle points at.
func (a *resourceArena) retain(h resourceHandle) {
	if _, ok := a.lookup(h); ok {
		a.slots[h.index].refs++
	}
}

// release drops a reference. When the last reference goes, the slot is
// freed and the backend texture is returned for destruction.
func (a *resourceArena) release(h resourceHandle) (TextureID, bool) {
	if _, ok := a.lookup(h); !ok {
		return InvalidTexture, false
	}
	slot := &a.slots[h.index]
	slot.refs--
	if slot.refs > 0 {
		return InvalidTexture, false
	}
	id := slot.id
	a.freeSlot(h.index)
	return id, true
}

// drain frees every live slot and returns their backend textures.
// The canvas calls this at shutdown, before closing the backend.
func (a *resourceArena) drain() []TextureID {
	var ids []TextureID
	for i := range a.slots {
		if a.slots[i].live {
			ids = append(ids, a.slots[i].id)
			a.freeSlot(uint32(i))
		}
	}
	return ids
}

func (a *resourceArena) freeSlot(idx uint32) {
	slot := &a.slots[idx]
	slot.live = false
	slot.refs = 0
	slot.id = InvalidTexture
	slot.gen++
	a.free = append(a.free, idx)
}

// liveCount returns the number of live slots.
func (a *resourceArena) liveCount() int {
	n := 0
	for i := range a.slots {
		if a.slots[i].live {
			n++
		}
	}
	return n
}
