package parameter

import "github.com/zeldamods/aamp/internal/hash"

// Object is an insertion-ordered mapping from CRC32 keys to parameter values.
//
// The object also stores its own CRC32 key, assigned when it is inserted into
// its parent list and immutable thereafter. The key is used as the parent
// context during name recovery.
type Object struct {
	crc    uint32
	keys   []uint32
	params map[uint32]Value
}

// NewObject creates an empty parameter object.
func NewObject() *Object {
	return &Object{params: make(map[uint32]Value)}
}

// Crc32 returns the object's own key within its parent list.
func (o *Object) Crc32() uint32 { return o.crc }

// Len returns the number of parameters.
func (o *Object) Len() int { return len(o.keys) }

// Keys returns the parameter keys in insertion order.
// The returned slice is owned by the object and must not be modified.
func (o *Object) Keys() []uint32 { return o.keys }

// Set adds or updates the parameter named name.
func (o *Object) Set(name string, v Value) {
	o.SetKey(hash.Crc32(name), v)
}

// SetKey adds or updates the parameter with an explicit CRC32 key.
func (o *Object) SetKey(key uint32, v Value) {
	if _, ok := o.params[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.params[key] = v
}

// Get returns the parameter named name.
func (o *Object) Get(name string) (Value, bool) {
	return o.GetKey(hash.Crc32(name))
}

// GetKey returns the parameter with the given CRC32 key.
func (o *Object) GetKey(key uint32) (Value, bool) {
	v, ok := o.params[key]
	return v, ok
}

// List is an insertion-ordered pair of mappings, child lists and child
// objects, each keyed by CRC32. The two key namespaces are disjoint.
type List struct {
	crc     uint32
	listKey []uint32
	objKey  []uint32
	lists   map[uint32]*List
	objects map[uint32]*Object
}

// NewList creates an empty parameter list.
func NewList() *List {
	return &List{
		lists:   make(map[uint32]*List),
		objects: make(map[uint32]*Object),
	}
}

// Crc32 returns the list's own key within its parent.
func (l *List) Crc32() uint32 { return l.crc }

// ListKeys returns the child list keys in insertion order.
// The returned slice is owned by the list and must not be modified.
func (l *List) ListKeys() []uint32 { return l.listKey }

// ObjectKeys returns the child object keys in insertion order.
// The returned slice is owned by the list and must not be modified.
func (l *List) ObjectKeys() []uint32 { return l.objKey }

// SetList adds or replaces the child list named name.
func (l *List) SetList(name string, child *List) {
	l.SetListKey(hash.Crc32(name), child)
}

// SetListKey adds or replaces a child list with an explicit CRC32 key.
// The child's own key is set here and never changes afterwards.
func (l *List) SetListKey(key uint32, child *List) {
	child.crc = key
	if _, ok := l.lists[key]; !ok {
		l.listKey = append(l.listKey, key)
	}
	l.lists[key] = child
}

// SetObject adds or replaces the child object named name.
func (l *List) SetObject(name string, child *Object) {
	l.SetObjectKey(hash.Crc32(name), child)
}

// SetObjectKey adds or replaces a child object with an explicit CRC32 key.
func (l *List) SetObjectKey(key uint32, child *Object) {
	child.crc = key
	if _, ok := l.objects[key]; !ok {
		l.objKey = append(l.objKey, key)
	}
	l.objects[key] = child
}

// List returns the child list named name.
func (l *List) List(name string) (*List, bool) {
	return l.ListKey(hash.Crc32(name))
}

// ListKey returns the child list with the given CRC32 key.
func (l *List) ListKey(key uint32) (*List, bool) {
	c, ok := l.lists[key]
	return c, ok
}

// Object returns the child object named name.
func (l *List) Object(name string) (*Object, bool) {
	return l.ObjectKey(hash.Crc32(name))
}

// ObjectKey returns the child object with the given CRC32 key.
func (l *List) ObjectKey(key uint32) (*Object, bool) {
	c, ok := l.objects[key]
	return c, ok
}

// NumLists returns the number of child lists.
func (l *List) NumLists() int { return len(l.listKey) }

// NumObjects returns the number of child objects.
func (l *List) NumObjects() int { return len(l.objKey) }

// IO is the root of a parameter archive: a list annotated with a type string
// (e.g. "xml") and a version. It contains exactly one top-level child list,
// conventionally named "param_root", whose CRC32 key is preserved.
type IO struct {
	List

	// Type is the archive's ASCII type name.
	Type string
	// Version is the archive's IO version, written at header offset 0x10.
	Version uint32
}

// NewIO creates a parameter IO with the given type string and version.
func NewIO(typ string, version uint32) *IO {
	return &IO{
		List:    *NewList(),
		Type:    typ,
		Version: version,
	}
}

// Root returns the single top-level child list and its CRC32 key.
// ok is false when the IO has no child list.
func (io *IO) Root() (root *List, key uint32, ok bool) {
	if len(io.listKey) == 0 {
		return nil, 0, false
	}
	key = io.listKey[0]

	return io.lists[key], key, true
}
