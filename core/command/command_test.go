package command

import "testing"

// recordingCommand is a minimal Command used across this package's tests:
// it tracks how many times Do/Undo ran and carries an int value it adds to
// a shared counter, so push/undo/redo order is observable.
type recordingCommand struct {
	name    string
	delta   int
	counter *int
}

func (c *recordingCommand) Name() string { return c.name }
func (c *recordingCommand) Do()          { *c.counter += c.delta }
func (c *recordingCommand) Undo()        { *c.counter -= c.delta }

// mergeableCommand absorbs any subsequently pushed mergeableCommand with
// the same name, summing their deltas (mirrors a typical "paint stroke"
// command kind per spec.md §4.2).
type mergeableCommand struct {
	recordingCommand
}

// MergeWith absorbs other's delta into the receiver. other has already
// had Do called on it by Stack.Push before MergeWith runs, so the
// counter itself needs no further mutation here — only the receiver's
// own delta (used by a later Undo) needs to grow.
func (c *mergeableCommand) MergeWith(other Command) bool {
	o, ok := other.(*mergeableCommand)
	if !ok || o.name != c.name {
		return false
	}
	c.delta += o.delta
	return true
}

func TestPushAppliesAndStores(t *testing.T) {
	counter := 0
	s := NewStack(10)

	s.Push(&recordingCommand{name: "add 5", delta: 5, counter: &counter})

	if counter != 5 {
		t.Fatalf("counter = %d, want 5", counter)
	}
	if s.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", s.Size())
	}
	if !s.CanUndo() || s.CanRedo() {
		t.Fatalf("CanUndo/CanRedo = %v/%v, want true/false", s.CanUndo(), s.CanRedo())
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	counter := 0
	s := NewStack(10)
	s.Push(&recordingCommand{name: "add 5", delta: 5, counter: &counter})
	s.Push(&recordingCommand{name: "add 3", delta: 3, counter: &counter})

	if counter != 8 {
		t.Fatalf("counter after two pushes = %d, want 8", counter)
	}

	s.Undo()
	if counter != 5 {
		t.Fatalf("counter after Undo = %d, want 5", counter)
	}
	if !s.CanRedo() {
		t.Fatalf("CanRedo = false after a single Undo")
	}

	s.Undo()
	if counter != 0 {
		t.Fatalf("counter after second Undo = %d, want 0", counter)
	}
	if s.CanUndo() {
		t.Fatalf("CanUndo = true with nothing left to undo")
	}

	s.Redo()
	s.Redo()
	if counter != 8 {
		t.Fatalf("counter after redoing both = %d, want 8", counter)
	}
	if s.CanRedo() {
		t.Fatalf("CanRedo = true after redoing everything")
	}
}

func TestUndoPanicsWhenEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Undo: expected panic with nothing to undo")
		}
	}()
	NewStack(10).Undo()
}

func TestPushAfterUndoDiscardsRedoSuffix(t *testing.T) {
	counter := 0
	s := NewStack(10)
	s.Push(&recordingCommand{name: "a", delta: 1, counter: &counter})
	s.Push(&recordingCommand{name: "b", delta: 2, counter: &counter})
	s.Undo()

	s.Push(&recordingCommand{name: "c", delta: 10, counter: &counter})

	if s.CanRedo() {
		t.Fatalf("CanRedo = true: pushing after undo should discard the redo suffix")
	}
	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2 (a, c)", s.Size())
	}
	if counter != 11 {
		t.Fatalf("counter = %d, want 11 (1 + 10)", counter)
	}
}

func TestMergeableAbsorbsMatchingCommand(t *testing.T) {
	counter := 0
	s := NewStack(10)
	s.Push(&mergeableCommand{recordingCommand{name: "paint", delta: 1, counter: &counter}})
	s.Push(&mergeableCommand{recordingCommand{name: "paint", delta: 2, counter: &counter}})

	if s.Size() != 1 {
		t.Fatalf("Size() = %d, want 1 (second push merged into the first)", s.Size())
	}
	if counter != 3 {
		t.Fatalf("counter = %d, want 3", counter)
	}

	s.Undo()
	if counter != 0 {
		t.Fatalf("counter after undoing merged command = %d, want 0", counter)
	}
}

func TestMergeDoesNotAbsorbDifferentName(t *testing.T) {
	counter := 0
	s := NewStack(10)
	s.Push(&mergeableCommand{recordingCommand{name: "paint", delta: 1, counter: &counter}})
	s.Push(&mergeableCommand{recordingCommand{name: "erase", delta: 2, counter: &counter}})

	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2 (different names must not merge)", s.Size())
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	counter := 0
	s := NewStack(2)
	s.Push(&recordingCommand{name: "a", delta: 1, counter: &counter})
	s.Push(&recordingCommand{name: "b", delta: 2, counter: &counter})
	s.Push(&recordingCommand{name: "c", delta: 4, counter: &counter})

	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2 (oldest command evicted at capacity)", s.Size())
	}
	if s.UndoText() != "c" {
		t.Fatalf("UndoText() = %q, want %q", s.UndoText(), "c")
	}

	s.Undo()
	if s.UndoText() != "b" {
		t.Fatalf("UndoText() after one Undo = %q, want %q (command a was evicted)", s.UndoText(), "b")
	}
}

func TestCleanIndexTracksSavePoint(t *testing.T) {
	counter := 0
	s := NewStack(10)
	if !s.IsClean() {
		t.Fatalf("IsClean: a stack with no commands should report clean")
	}

	s.Push(&recordingCommand{name: "a", delta: 1, counter: &counter})
	s.MarkClean()
	if !s.IsClean() {
		t.Fatalf("IsClean: expected true right after MarkClean")
	}

	s.Push(&recordingCommand{name: "b", delta: 1, counter: &counter})
	if s.IsClean() {
		t.Fatalf("IsClean: expected false after pushing past the clean point")
	}

	s.Undo()
	if !s.IsClean() {
		t.Fatalf("IsClean: expected true after undoing back to the clean point")
	}
}

func TestCleanIndexInvalidatedByMerge(t *testing.T) {
	counter := 0
	s := NewStack(10)
	s.Push(&mergeableCommand{recordingCommand{name: "paint", delta: 1, counter: &counter}})
	s.MarkClean()

	s.Push(&mergeableCommand{recordingCommand{name: "paint", delta: 1, counter: &counter}})

	if s.IsClean() {
		t.Fatalf("IsClean: a merge must unconditionally invalidate the clean index")
	}
}

func TestCleanIndexInvalidatedWhenRedoSuffixDiscarded(t *testing.T) {
	counter := 0
	s := NewStack(10)
	s.Push(&recordingCommand{name: "a", delta: 1, counter: &counter})
	s.Push(&recordingCommand{name: "b", delta: 1, counter: &counter})
	s.Undo()
	s.MarkClean() // clean point is now inside what will become the discarded suffix once we push past it

	s.Undo()
	s.Push(&recordingCommand{name: "c", delta: 1, counter: &counter})

	if s.IsClean() {
		t.Fatalf("IsClean: clean index fell within the discarded redo suffix, should be invalidated")
	}
}

func TestCleanIndexShiftsOnEviction(t *testing.T) {
	counter := 0
	s := NewStack(3)
	s.Push(&recordingCommand{name: "a", delta: 1, counter: &counter})
	s.Push(&recordingCommand{name: "b", delta: 1, counter: &counter})
	s.MarkClean()

	// SetCapacity forces an eviction of "a" without pushing a new command,
	// so the clean index should shift left with it and stay valid.
	s.SetCapacity(1)

	if !s.IsClean() {
		t.Fatalf("IsClean: clean index should have shifted left with the eviction, staying valid")
	}
	if s.Size() != 1 {
		t.Fatalf("Size() = %d, want 1 after SetCapacity(1)", s.Size())
	}
}
