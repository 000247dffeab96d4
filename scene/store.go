package scene

import (
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"

	"github.com/jinzhu/copier"
)

var (
	// ErrCapacityExceeded is returned when an add or duplicate would write
	// past the store's fixed capacity. The store is left unchanged.
	ErrCapacityExceeded = errors.New("scene object store is full")

	// ErrInvalidIndex matches every *IndexError.
	ErrInvalidIndex = errors.New("invalid scene object index")

	errUnknownAttribute = errors.New("unknown attribute")
)

// IndexError reports access to a slot outside [0, Count).
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("scene object %d out of range [0,%d)", e.Index, e.Count)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrInvalidIndex
}

// Entry is one element of the draw-order iteration.
type Entry struct {
	Index   int
	Object  SceneObject
	Visible bool
}

// Store is the append-only registry of placed objects. Slots are never
// removed or compacted; hiding an object only clears its visible flag.
// Index 0 is the ground and indices 1 and 2 are the two lights once the
// scene has been populated.
type Store struct {
	objects  []SceneObject
	hidden   []bool
	capacity int
	textures int
	rng      *rand.Rand
}

// NewStore creates an empty store holding at most capacity objects. New
// objects get a texture drawn uniformly from [0, textureCount).
func NewStore(capacity, textureCount int, rng *rand.Rand) *Store {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Store{
		objects:  make([]SceneObject, 0, capacity),
		hidden:   make([]bool, 0, capacity),
		capacity: capacity,
		textures: textureCount,
		rng:      rng,
	}
}

// Len returns the number of live slots.
func (s *Store) Len() int { return len(s.objects) }

// Full reports whether another add would be refused.
func (s *Store) Full() bool { return len(s.objects) >= s.capacity }

func (s *Store) randomTexture() TextureID {
	if s.textures <= 0 {
		return 0
	}
	return TextureID(s.rng.IntN(s.textures))
}

func (s *Store) push(obj SceneObject) (int, error) {
	if s.Full() {
		return -1, ErrCapacityExceeded
	}
	s.objects = append(s.objects, obj)
	s.hidden = append(s.hidden, false)
	return len(s.objects) - 1, nil
}

// Add appends an object with default appearance at the origin.
func (s *Store) Add(mesh MeshID) (int, error) {
	return s.push(NewSceneObject(mesh, s.randomTexture()))
}

// AddAt appends an object with default appearance on the ground at (x, z).
func (s *Store) AddAt(mesh MeshID, x, z float32) (int, error) {
	obj := NewSceneObject(mesh, s.randomTexture())
	obj.Position.X = x
	obj.Position.Z = z
	return s.push(obj)
}

// Duplicate deep-copies slot src into the next free slot. The copy starts
// visible regardless of the source's flag.
func (s *Store) Duplicate(src int) (int, error) {
	if err := s.check(src); err != nil {
		return -1, err
	}
	var dup SceneObject
	if err := copier.CopyWithOption(&dup, &s.objects[src], copier.Option{DeepCopy: true}); err != nil {
		return -1, fmt.Errorf("copy scene object %d: %w", src, err)
	}
	return s.push(dup)
}

func (s *Store) check(i int) error {
	if i < 0 || i >= len(s.objects) {
		return &IndexError{Index: i, Count: len(s.objects)}
	}
	return nil
}

// Get returns a copy of slot i.
func (s *Store) Get(i int) (SceneObject, error) {
	if err := s.check(i); err != nil {
		return SceneObject{}, err
	}
	return s.objects[i], nil
}

// At returns slot i for in-place mutation. The pointer stays valid for the
// lifetime of the store since slots are never reallocated past capacity.
func (s *Store) At(i int) (*SceneObject, error) {
	if err := s.check(i); err != nil {
		return nil, err
	}
	return &s.objects[i], nil
}

// Replace overwrites every attribute of slot i.
func (s *Store) Replace(i int, obj SceneObject) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.objects[i] = obj
	return nil
}

// Set writes one attribute of slot i.
func (s *Store) Set(i int, attr Attribute, value float32) error {
	if err := s.check(i); err != nil {
		return err
	}
	f := attr.field(&s.objects[i])
	if f == nil {
		return fmt.Errorf("set attribute %d: %w", int(attr), errUnknownAttribute)
	}
	*f = value
	return nil
}

// SetTexture changes the texture reference of slot i.
func (s *Store) SetTexture(i int, tex TextureID) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.objects[i].Texture = tex
	return nil
}

// SetHidden toggles whether slot i is skipped by rendering.
func (s *Store) SetHidden(i int, hidden bool) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.hidden[i] = hidden
	return nil
}

func (s *Store) Hidden(i int) (bool, error) {
	if err := s.check(i); err != nil {
		return false, err
	}
	return s.hidden[i], nil
}

// All yields every slot in insertion order, which is the draw order. The
// sequence is lazy and may be ranged over any number of times.
func (s *Store) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for i := range s.objects {
			if !yield(Entry{Index: i, Object: s.objects[i], Visible: !s.hidden[i]}) {
				return
			}
		}
	}
}
