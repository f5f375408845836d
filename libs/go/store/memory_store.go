package store

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/guardian/guardian-api/libs/go/db"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type memberKey struct {
	kind    string
	account string
}

type approvalKey struct {
	account string
	nonce   string
}

// memoryState is the full content of a MemoryStore. It is treated as
// immutable once published: transactions work on a clone.
type memoryState struct {
	members      map[memberKey][]db.GuardRegistryMember
	approvals    map[approvalKey]db.GuardApproval
	events       []db.GuardEvent
	cursors      map[string]db.GuardSyncCursor
	nextPosition int64
	nextEventID  int64
}

func newMemoryState() *memoryState {
	return &memoryState{
		members:      make(map[memberKey][]db.GuardRegistryMember),
		approvals:    make(map[approvalKey]db.GuardApproval),
		cursors:      make(map[string]db.GuardSyncCursor),
		nextPosition: 1,
		nextEventID:  1,
	}
}

func (s *memoryState) clone() *memoryState {
	out := &memoryState{
		members:      make(map[memberKey][]db.GuardRegistryMember, len(s.members)),
		approvals:    make(map[approvalKey]db.GuardApproval, len(s.approvals)),
		events:       append([]db.GuardEvent(nil), s.events...),
		cursors:      make(map[string]db.GuardSyncCursor, len(s.cursors)),
		nextPosition: s.nextPosition,
		nextEventID:  s.nextEventID,
	}
	for k, v := range s.members {
		out.members[k] = append([]db.GuardRegistryMember(nil), v...)
	}
	for k, v := range s.approvals {
		out.approvals[k] = v
	}
	for k, v := range s.cursors {
		out.cursors[k] = v
	}
	return out
}

// Snapshot is an opaque copy of a MemoryStore's content.
type Snapshot struct {
	state *memoryState
}

// MemoryStore keeps guard state in process memory. It backs the drill ledger
// and local runs without a database.
type MemoryStore struct {
	mu    sync.RWMutex
	state *memoryState
	now   func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: newMemoryState(), now: time.Now}
}

// ExecTx runs fn on a private copy and publishes it only when fn succeeds.
func (s *MemoryStore) ExecTx(ctx context.Context, fn TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(&memoryQuerier{state: work, now: s.now}); err != nil {
		return err
	}
	s.state = work
	return nil
}

// Snapshot captures the current content. Published states are immutable,
// so no copy is needed.
func (s *MemoryStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{state: s.state}
}

// Restore replaces the content with a previously taken snapshot.
func (s *MemoryStore) Restore(snap Snapshot) {
	if snap.state == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = snap.state
}

func (s *MemoryStore) read() *memoryQuerier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// published states are never mutated, so the pointer is safe to read without the lock
	return &memoryQuerier{state: s.state, now: s.now}
}

func (s *MemoryStore) write(ctx context.Context, fn func(q *memoryQuerier) error) error {
	return s.ExecTx(ctx, func(q db.Querier) error {
		return fn(q.(*memoryQuerier))
	})
}

func (s *MemoryStore) DeleteRegistryMember(ctx context.Context, arg db.DeleteRegistryMemberParams) (int64, error) {
	var n int64
	err := s.write(ctx, func(q *memoryQuerier) error {
		var err error
		n, err = q.DeleteRegistryMember(ctx, arg)
		return err
	})
	return n, err
}

func (s *MemoryStore) GetApproval(ctx context.Context, arg db.GetApprovalParams) (db.GuardApproval, error) {
	return s.read().GetApproval(ctx, arg)
}

func (s *MemoryStore) GetSyncCursor(ctx context.Context, guard string) (db.GuardSyncCursor, error) {
	return s.read().GetSyncCursor(ctx, guard)
}

func (s *MemoryStore) InsertGuardEvent(ctx context.Context, arg db.InsertGuardEventParams) (db.GuardEvent, error) {
	var ev db.GuardEvent
	err := s.write(ctx, func(q *memoryQuerier) error {
		var err error
		ev, err = q.InsertGuardEvent(ctx, arg)
		return err
	})
	return ev, err
}

func (s *MemoryStore) InsertRegistryMember(ctx context.Context, arg db.InsertRegistryMemberParams) (db.GuardRegistryMember, error) {
	var m db.GuardRegistryMember
	err := s.write(ctx, func(q *memoryQuerier) error {
		var err error
		m, err = q.InsertRegistryMember(ctx, arg)
		return err
	})
	return m, err
}

func (s *MemoryStore) ListApprovals(ctx context.Context, account string) ([]db.GuardApproval, error) {
	return s.read().ListApprovals(ctx, account)
}

func (s *MemoryStore) ListGuardEvents(ctx context.Context, arg db.ListGuardEventsParams) ([]db.GuardEvent, error) {
	return s.read().ListGuardEvents(ctx, arg)
}

func (s *MemoryStore) ListRegistryMembers(ctx context.Context, arg db.ListRegistryMembersParams) ([]db.GuardRegistryMember, error) {
	return s.read().ListRegistryMembers(ctx, arg)
}

func (s *MemoryStore) RegistryMemberExists(ctx context.Context, arg db.RegistryMemberExistsParams) (bool, error) {
	return s.read().RegistryMemberExists(ctx, arg)
}

func (s *MemoryStore) UpsertApproval(ctx context.Context, arg db.UpsertApprovalParams) (db.GuardApproval, error) {
	var a db.GuardApproval
	err := s.write(ctx, func(q *memoryQuerier) error {
		var err error
		a, err = q.UpsertApproval(ctx, arg)
		return err
	})
	return a, err
}

func (s *MemoryStore) UpsertSyncCursor(ctx context.Context, arg db.UpsertSyncCursorParams) (db.GuardSyncCursor, error) {
	var c db.GuardSyncCursor
	err := s.write(ctx, func(q *memoryQuerier) error {
		var err error
		c, err = q.UpsertSyncCursor(ctx, arg)
		return err
	})
	return c, err
}

// memoryQuerier mirrors the SQL in db/queries/guard.sql over a memoryState.
type memoryQuerier struct {
	state *memoryState
	now   func() time.Time
}

func (q *memoryQuerier) timestamp() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: q.now().UTC(), Valid: true}
}

func (q *memoryQuerier) DeleteRegistryMember(_ context.Context, arg db.DeleteRegistryMemberParams) (int64, error) {
	key := memberKey{kind: arg.Kind, account: arg.Account}
	members := q.state.members[key]
	for i, m := range members {
		if m.Member == arg.Member {
			q.state.members[key] = append(members[:i:i], members[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (q *memoryQuerier) GetApproval(_ context.Context, arg db.GetApprovalParams) (db.GuardApproval, error) {
	nonce, err := helpers.NumericToBig(arg.Nonce)
	if err != nil {
		return db.GuardApproval{}, err
	}
	a, ok := q.state.approvals[approvalKey{account: arg.Account, nonce: nonce.String()}]
	if !ok {
		return db.GuardApproval{}, pgx.ErrNoRows
	}
	return a, nil
}

func (q *memoryQuerier) GetSyncCursor(_ context.Context, guard string) (db.GuardSyncCursor, error) {
	c, ok := q.state.cursors[guard]
	if !ok {
		return db.GuardSyncCursor{}, pgx.ErrNoRows
	}
	return c, nil
}

func (q *memoryQuerier) InsertGuardEvent(_ context.Context, arg db.InsertGuardEventParams) (db.GuardEvent, error) {
	payload := arg.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	ev := db.GuardEvent{
		ID:        q.state.nextEventID,
		Name:      arg.Name,
		Account:   arg.Account,
		Payload:   append([]byte(nil), payload...),
		CreatedAt: q.timestamp(),
	}
	q.state.nextEventID++
	q.state.events = append(q.state.events, ev)
	return ev, nil
}

func (q *memoryQuerier) InsertRegistryMember(_ context.Context, arg db.InsertRegistryMemberParams) (db.GuardRegistryMember, error) {
	key := memberKey{kind: arg.Kind, account: arg.Account}
	for _, m := range q.state.members[key] {
		if m.Member == arg.Member {
			return db.GuardRegistryMember{}, ErrDuplicateKey
		}
	}
	m := db.GuardRegistryMember{
		Kind:      arg.Kind,
		Account:   arg.Account,
		Member:    arg.Member,
		Position:  q.state.nextPosition,
		CreatedAt: q.timestamp(),
	}
	q.state.nextPosition++
	q.state.members[key] = append(q.state.members[key], m)
	return m, nil
}

func (q *memoryQuerier) ListApprovals(_ context.Context, account string) ([]db.GuardApproval, error) {
	type entry struct {
		nonce *big.Int
		row   db.GuardApproval
	}
	var entries []entry
	for k, a := range q.state.approvals {
		if k.account != account {
			continue
		}
		n, _ := new(big.Int).SetString(k.nonce, 10)
		entries = append(entries, entry{nonce: n, row: a})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].nonce.Cmp(entries[j].nonce) > 0 })

	out := make([]db.GuardApproval, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.row)
	}
	return out, nil
}

func (q *memoryQuerier) ListGuardEvents(_ context.Context, arg db.ListGuardEventsParams) ([]db.GuardEvent, error) {
	out := make([]db.GuardEvent, 0)
	for i := len(q.state.events) - 1; i >= 0 && int32(len(out)) < arg.Limit; i-- {
		if q.state.events[i].Account == arg.Account {
			out = append(out, q.state.events[i])
		}
	}
	return out, nil
}

func (q *memoryQuerier) ListRegistryMembers(_ context.Context, arg db.ListRegistryMembersParams) ([]db.GuardRegistryMember, error) {
	members := q.state.members[memberKey{kind: arg.Kind, account: arg.Account}]
	return append(make([]db.GuardRegistryMember, 0, len(members)), members...), nil
}

func (q *memoryQuerier) RegistryMemberExists(_ context.Context, arg db.RegistryMemberExistsParams) (bool, error) {
	for _, m := range q.state.members[memberKey{kind: arg.Kind, account: arg.Account}] {
		if m.Member == arg.Member {
			return true, nil
		}
	}
	return false, nil
}

func (q *memoryQuerier) UpsertApproval(_ context.Context, arg db.UpsertApprovalParams) (db.GuardApproval, error) {
	nonce, err := helpers.NumericToBig(arg.Nonce)
	if err != nil {
		return db.GuardApproval{}, err
	}
	a := db.GuardApproval{
		Account:     arg.Account,
		Nonce:       helpers.BigToNumeric(nonce),
		Fingerprint: append([]byte(nil), arg.Fingerprint...),
		Auditor:     arg.Auditor,
		UpdatedAt:   q.timestamp(),
	}
	q.state.approvals[approvalKey{account: arg.Account, nonce: nonce.String()}] = a
	return a, nil
}

func (q *memoryQuerier) UpsertSyncCursor(_ context.Context, arg db.UpsertSyncCursorParams) (db.GuardSyncCursor, error) {
	if arg.LastBlock < 0 {
		return db.GuardSyncCursor{}, fmt.Errorf("negative sync cursor %d", arg.LastBlock)
	}
	c := db.GuardSyncCursor{
		Guard:     arg.Guard,
		LastBlock: arg.LastBlock,
		UpdatedAt: q.timestamp(),
	}
	q.state.cursors[arg.Guard] = c
	return c, nil
}

var (
	_ Store      = (*MemoryStore)(nil)
	_ db.Querier = (*memoryQuerier)(nil)
)
