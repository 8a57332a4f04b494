package tx

import (
	"errors"

	"github.com/joshuapare/pbxkit/pbx"
)

// ErrNoTransaction is returned by Rollback when no transaction is active.
var ErrNoTransaction = errors.New("tx: no active transaction")

type entry struct {
	id   pbx.ID // object touched, "" for custom steps
	undo func() error
}

// Manager journals undo steps for one graph.
//
// The manager is NOT thread-safe. Only one goroutine should use it at a time.
type Manager struct {
	g       *pbx.Graph
	journal []entry
	marks   []int            // journal length at each open Begin
	snapped map[pbx.ID][]int // journal positions of snapshots per object
	seq     uint64           // outermost transactions started
}

// NewManager creates a transaction manager for g.
func NewManager(g *pbx.Graph) *Manager {
	return &Manager{g: g, snapped: make(map[pbx.ID][]int)}
}

// Begin opens a transaction, nested inside the current one if any.
func (m *Manager) Begin() {
	if len(m.marks) == 0 {
		m.seq++
	}
	m.marks = append(m.marks, len(m.journal))
}

// Commit closes the innermost transaction. Committing with no active
// transaction is a no-op.
func (m *Manager) Commit() {
	if len(m.marks) == 0 {
		return
	}
	m.marks = m.marks[:len(m.marks)-1]
	if len(m.marks) == 0 {
		m.reset()
	}
}

// Rollback undoes every step recorded since the innermost Begin and closes
// that transaction. Undo steps that fail are joined into the returned error;
// the remaining steps still run.
func (m *Manager) Rollback() error {
	if len(m.marks) == 0 {
		return ErrNoTransaction
	}
	mark := m.marks[len(m.marks)-1]
	m.marks = m.marks[:len(m.marks)-1]

	var errs []error
	for i := len(m.journal) - 1; i >= mark; i-- {
		if err := m.journal[i].undo(); err != nil {
			errs = append(errs, err)
		}
	}
	m.truncate(mark)
	if len(m.marks) == 0 {
		m.reset()
	}
	return errors.Join(errs...)
}

// InTransaction returns whether a transaction is currently active.
func (m *Manager) InTransaction() bool { return len(m.marks) > 0 }

// Depth returns the number of open transactions.
func (m *Manager) Depth() int { return len(m.marks) }

// CurrentSequence returns the number of outermost transactions begun.
func (m *Manager) CurrentSequence() uint64 { return m.seq }

// Len returns the number of journal entries.
func (m *Manager) Len() int { return len(m.journal) }

// Record appends a custom undo step. Outside a transaction it is dropped.
func (m *Manager) Record(undo func() error) {
	if m.InTransaction() {
		m.journal = append(m.journal, entry{undo: undo})
	}
}

// Snapshot saves the fields of an attached object so Rollback can restore
// them. An object is copied at most once per open transaction.
func (m *Manager) Snapshot(o pbx.Object) {
	if !m.InTransaction() {
		return
	}
	id := o.ID()
	if pos := m.snapped[id]; len(pos) > 0 && pos[len(pos)-1] >= m.marks[len(m.marks)-1] {
		return
	}
	saved := pbx.Clone(o)
	m.snapped[id] = append(m.snapped[id], len(m.journal))
	m.journal = append(m.journal, entry{id: id, undo: func() error {
		return m.g.Restore(saved)
	}})
}

// Attached records that id was added to the graph.
func (m *Manager) Attached(id pbx.ID) {
	m.Record(func() error {
		m.g.Detach(id)
		return nil
	})
}

// Detached records that o was removed from the graph. Rollback re-attaches
// the same object, so handles to it stay valid.
func (m *Manager) Detached(o pbx.Object) {
	m.Record(func() error {
		return m.g.Attach(o.ID(), o)
	})
}

func (m *Manager) truncate(n int) {
	for i := len(m.journal) - 1; i >= n; i-- {
		id := m.journal[i].id
		if id == "" {
			continue
		}
		pos := m.snapped[id]
		if len(pos) > 0 && pos[len(pos)-1] == i {
			m.snapped[id] = pos[:len(pos)-1]
		}
	}
	m.journal = m.journal[:n]
}

func (m *Manager) reset() {
	m.journal = nil
	clear(m.snapped)
}
