package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mmynk/splitroom/internal/models"
	"github.com/mmynk/splitroom/internal/realtime"
	"github.com/mmynk/splitroom/internal/storage"
	"github.com/mmynk/splitroom/internal/storage/sqlite"
)

// recorder is a Notifier that remembers what it was asked to do.
type recorder struct {
	mu          sync.Mutex
	events      []realtime.Event
	disconnects []string
	closed      []string
}

func (r *recorder) Broadcast(roomID string, ev realtime.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) Disconnect(roomID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disconnects = append(r.disconnects, userID)
}

func (r *recorder) CloseRoom(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = append(r.closed, roomID)
}

func (r *recorder) count(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestEngine(t *testing.T) (*Engine, *recorder, *sqlite.SQLiteStore) {
	t.Helper()

	store := newTestStore(t)
	rec := &recorder{}
	return New(store, rec), rec, store
}

func createUser(t *testing.T, store storage.Store, name string) string {
	t.Helper()

	user := models.NewUser(name+"@example.com", name, "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to create user %s: %v", name, err)
	}
	return user.ID
}

// roomWith creates a room owned by the first user and joins the rest in order.
func roomWith(t *testing.T, engine *Engine, owner string, others ...string) *models.Room {
	t.Helper()
	ctx := context.Background()

	room, err := engine.CreateRoom(ctx, owner, "Trip")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	for _, userID := range others {
		if _, err := engine.Join(ctx, userID, room.InviteCode); err != nil {
			t.Fatalf("Join failed: %v", err)
		}
	}
	return room
}

func transfer(t *testing.T, engine *Engine, roomID, payer, payee, amount string) {
	t.Helper()

	if _, err := engine.CreateTransfer(context.Background(), payer, roomID, payee, models.MustParseAmount(amount)); err != nil {
		t.Fatalf("CreateTransfer %s -> %s failed: %v", payer, payee, err)
	}
}

func balance(t *testing.T, engine *Engine, roomID, userID string) models.Amount {
	t.Helper()

	b, err := engine.Balance(context.Background(), roomID, userID)
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	return b
}

func TestCreateRoom(t *testing.T) {
	engine, _, store := newTestEngine(t)
	ctx := context.Background()
	owner := createUser(t, store, "Olive")

	room, err := engine.CreateRoom(ctx, owner, "  ")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	if room.Name != "Olive's room" {
		t.Errorf("Expected default name, got %q", room.Name)
	}
	if len(room.InviteCode) != inviteCodeLength {
		t.Errorf("Expected %d-character invite code, got %q", inviteCodeLength, room.InviteCode)
	}
	if room.CreatorID != owner {
		t.Errorf("Expected owner %s, got %s", owner, room.CreatorID)
	}

	ok, err := engine.IsMember(ctx, room.ID, owner)
	if err != nil || !ok {
		t.Errorf("Expected owner to be a member, got %v, %v", ok, err)
	}

	if _, err := engine.CreateRoom(ctx, "ghost", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestJoinIsIdempotent(t *testing.T) {
	engine, rec, store := newTestEngine(t)
	ctx := context.Background()
	owner := createUser(t, store, "O")
	a := createUser(t, store, "A")
	room := roomWith(t, engine, owner)

	first, err := engine.Join(ctx, a, room.InviteCode)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if first.AlreadyMember {
		t.Error("First join reported AlreadyMember")
	}

	second, err := engine.Join(ctx, a, " "+room.InviteCode+" ")
	if err != nil {
		t.Fatalf("Second join failed: %v", err)
	}
	if !second.AlreadyMember {
		t.Error("Second join did not report AlreadyMember")
	}
	if len(second.Members) != 2 {
		t.Errorf("Expected 2 members, got %d", len(second.Members))
	}
	if n := rec.count(realtime.EventMemberJoined); n != 1 {
		t.Errorf("Expected 1 member_joined event, got %d", n)
	}

	if _, err := engine.Join(ctx, a, "ZZZZZZ"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown invite, got %v", err)
	}
}

func TestBalancesSumToZeroAndSettle(t *testing.T) {
	engine, rec, store := newTestEngine(t)
	ctx := context.Background()
	o := createUser(t, store, "O")
	a := createUser(t, store, "A")
	b := createUser(t, store, "B")
	room := roomWith(t, engine, o, a, b)

	transfer(t, engine, room.ID, a, b, "30.00")
	transfer(t, engine, room.ID, b, o, "10.00")

	want := map[string]string{a: "-30.00", b: "20.00", o: "10.00"}
	var sum models.Amount
	for userID, expected := range want {
		got := balance(t, engine, room.ID, userID)
		if got.String() != expected {
			t.Errorf("balance(%s) = %s, want %s", userID, got, expected)
		}
		sum += got
	}
	if sum != 0 {
		t.Errorf("Balances sum to %s, want 0", sum)
	}

	if _, err := engine.CreateSettlement(ctx, a, room.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for non-owner settlement, got %v", err)
	}

	result, err := engine.CreateSettlement(ctx, o, room.ID)
	if err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}
	if len(result.Lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(result.Lines))
	}
	for _, line := range result.Lines {
		if line.NetAmount.String() != want[line.UserID] {
			t.Errorf("net(%s) = %s, want %s", line.DisplayName, line.NetAmount, want[line.UserID])
		}
	}
	if result.TransferCount != 2 {
		t.Errorf("Expected 2 settled transfers, got %d", result.TransferCount)
	}

	for userID := range want {
		if got := balance(t, engine, room.ID, userID); got != 0 {
			t.Errorf("balance(%s) after settlement = %s, want 0.00", userID, got)
		}
	}
	if n := rec.count(realtime.EventSettlementCreated); n != 1 {
		t.Errorf("Expected 1 settlement_created event, got %d", n)
	}

	page, err := engine.ListTransfers(ctx, a, room.ID, 0, 0)
	if err != nil {
		t.Fatalf("ListTransfers failed: %v", err)
	}
	for _, tr := range page.Transfers {
		if !tr.Settled() {
			t.Errorf("Transfer %s not stamped", tr.ID)
		}
	}
}

func TestEmptySettlementListsEveryMember(t *testing.T) {
	engine, _, store := newTestEngine(t)
	ctx := context.Background()
	o := createUser(t, store, "O")
	a := createUser(t, store, "A")
	b := createUser(t, store, "B")
	room := roomWith(t, engine, o, a, b)

	result, err := engine.CreateSettlement(ctx, o, room.ID)
	if err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}
	if len(result.Lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(result.Lines))
	}
	for _, line := range result.Lines {
		if line.NetAmount != 0 {
			t.Errorf("Expected zero net for %s, got %s", line.UserID, line.NetAmount)
		}
	}

	history, err := engine.ListSettlements(ctx, a, room.ID)
	if err != nil {
		t.Fatalf("ListSettlements failed: %v", err)
	}
	if len(history) != 1 || len(history[0].Lines) != 3 {
		t.Errorf("Expected one settlement with 3 items, got %+v", history)
	}
}

func TestCreateTransferValidation(t *testing.T) {
	engine, _, store := newTestEngine(t)
	ctx := context.Background()
	o := createUser(t, store, "O")
	a := createUser(t, store, "A")
	stranger := createUser(t, store, "S")
	room := roomWith(t, engine, o, a)

	tests := []struct {
		name    string
		payer   string
		payee   string
		amount  models.Amount
		wantErr error
	}{
		{"zero amount", o, a, 0, ErrInvalidAmount},
		{"negative amount", o, a, -100, ErrInvalidAmount},
		{"too large", o, a, models.MaxAmount + 1, ErrInvalidAmount},
		{"self transfer", o, o, 100, ErrSelfTransfer},
		{"payee not member", o, stranger, 100, ErrPayeeNotMember},
		{"payer not member", stranger, o, 100, ErrNotMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.CreateTransfer(ctx, tt.payer, room.ID, tt.payee, tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := engine.CreateTransfer(ctx, o, "missing", a, 100); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("Expected ErrRoomNotFound, got %v", err)
	}
}

func TestBalanceRequiresMembership(t *testing.T) {
	engine, _, store := newTestEngine(t)
	ctx := context.Background()
	o := createUser(t, store, "O")
	stranger := createUser(t, store, "S")
	room := roomWith(t, engine, o)

	if _, err := engine.Balance(ctx, room.ID, stranger); !errors.Is(err, ErrNotMember) {
		t.Errorf("Expected ErrNotMember, got %v", err)
	}
	if _, err := engine.Balance(ctx, "missing", o); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestOwnerSuccession(t *testing.T) {
	engine, rec, store := newTestEngine(t)
	ctx := context.Background()
	o := createUser(t, store, "O")
	a := createUser(t, store, "A")
	b := createUser(t, store, "B")
	c := createUser(t, store, "C")
	room := roomWith(t, engine, o, a, b, c)

	result, err := engine.Leave(ctx, o, room.ID)
	if err != nil {
		t.Fatalf("Leave failed: %v", err)
	}
	if result.NewOwnerID != a {
		t.Errorf("Expected A to inherit the room, got %s", result.NewOwnerID)
	}

	detail, err := engine.GetRoom(ctx, a, room.ID)
	if err != nil {
		t.Fatalf("GetRoom failed: %v", err)
	}
	if detail.Room.CreatorID != a {
		t.Errorf("Expected stored owner A, got %s", detail.Room.CreatorID)
	}
	if len(detail.Members) != 3 {
		t.Errorf("Expected 3 remaining members, got %d", len(detail.Members))
	}
	for _, m := range detail.Members {
		if m.IsOwner != (m.UserID == a) {
			t.Errorf("Member %s IsOwner = %v", m.UserID, m.IsOwner)
		}
	}

	if len(rec.disconnects) != 1 || rec.disconnects[0] != o {
		t.Errorf("Expected departing owner to be disconnected, got %v", rec.disconnects)
	}
	if n := rec.count(realtime.EventMemberLeft); n != 1 {
		t.Errorf("Expected 1 member_left event, got %d", n)
	}

	if _, err := engine.Leave(ctx, o, room.ID); !errors.Is(err, ErrNotMember) {
		t.Errorf("Expected ErrNotMember on second leave, got %v", err)
	}
}

func TestLastMemberLeaveTearsDownRoom(t *testing.T) {
	engine, _, store := newTestEngine(t)
	ctx := context.Background()
	o := createUser(t, store, "O")
	a := createUser(t, store, "A")
	room := roomWith(t, engine, o, a)

	transfer(t, engine, room.ID, a, o, "5.00")
	if _, err := engine.CreateSettlement(ctx, o, room.ID); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}
	transfer(t, engine, room.ID, a, o, "7.50")

	// A owes money and cannot leave while O remains.
	if _, err := engine.Leave(ctx, a, room.ID); !errors.Is(err, ErrOutstandingBalance) {
		t.Fatalf("Expected ErrOutstandingBalance, got %v", err)
	}
	if ok, _ := engine.IsMember(ctx, room.ID, a); !ok {
		t.Fatal("Blocked leave removed the membership")
	}

	// Neither can the owner.
	if _, err := engine.Leave(ctx, o, room.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("Expected ErrConflict for owner with balance, got %v", err)
	}

	if _, err := engine.CreateSettlement(ctx, o, room.ID); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}
	if _, err := engine.Leave(ctx, a, room.ID); err != nil {
		t.Fatalf("Leave after settling failed: %v", err)
	}

	result, err := engine.Leave(ctx, o, room.ID)
	if err != nil {
		t.Fatalf("Last leave failed: %v", err)
	}
	if !result.RoomDeleted {
		t.Error("Expected room to be deleted")
	}

	if _, err := store.GetRoom(ctx, room.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected room gone, got %v", err)
	}
	settlements, err := store.ListSettlements(ctx, room.ID)
	if err != nil || len(settlements) != 0 {
		t.Errorf("Expected no settlements, got %d (%v)", len(settlements), err)
	}
	_, total, err := store.ListTransfers(ctx, room.ID, 10, 0)
	if err != nil || total != 0 {
		t.Errorf("Expected no transfers, got %d (%v)", total, err)
	}
}

func TestCloseRoom(t *testing.T) {
	engine, rec, store := newTestEngine(t)
	ctx := context.Background()
	o := createUser(t, store, "O")
	a := createUser(t, store, "A")
	room := roomWith(t, engine, o, a)
	transfer(t, engine, room.ID, a, o, "1.00")

	if err := engine.CloseRoom(ctx, a, room.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("Expected ErrNotOwner, got %v", err)
	}
	if err := engine.CloseRoom(ctx, o, room.ID); err != nil {
		t.Fatalf("CloseRoom failed: %v", err)
	}

	if _, err := store.GetRoom(ctx, room.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected room gone, got %v", err)
	}
	if rec.count(realtime.EventRoomClosed) != 1 || len(rec.closed) != 1 {
		t.Errorf("Expected room_closed broadcast and channel close, got %v / %v", rec.events, rec.closed)
	}
	rooms, err := engine.ListRooms(ctx, a)
	if err != nil || len(rooms) != 0 {
		t.Errorf("Expected no rooms for A, got %d (%v)", len(rooms), err)
	}
}

func TestUpdateNickname(t *testing.T) {
	engine, rec, store := newTestEngine(t)
	ctx := context.Background()
	o := createUser(t, store, "O")
	a := createUser(t, store, "A")
	room := roomWith(t, engine, o)

	joined, err := engine.Join(ctx, a, room.InviteCode)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	var memberID string
	for _, m := range joined.Members {
		if m.UserID == a {
			memberID = m.ID
		}
	}

	if _, err := engine.UpdateNickname(ctx, o, room.ID, memberID, "Boss"); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden renaming someone else, got %v", err)
	}

	member, err := engine.UpdateNickname(ctx, a, room.ID, memberID, "  Ace  ")
	if err != nil {
		t.Fatalf("UpdateNickname failed: %v", err)
	}
	if member.DisplayName() != "Ace" {
		t.Errorf("Expected trimmed nickname, got %q", member.DisplayName())
	}

	member, err = engine.UpdateNickname(ctx, a, room.ID, memberID, "")
	if err != nil {
		t.Fatalf("Clearing nickname failed: %v", err)
	}
	if member.CustomNickname != "" || member.DisplayName() != "A" {
		t.Errorf("Expected nickname cleared, got %q / %q", member.CustomNickname, member.DisplayName())
	}
	if n := rec.count(realtime.EventMemberUpdated); n != 2 {
		t.Errorf("Expected 2 member_updated events, got %d", n)
	}

	if _, err := engine.UpdateNickname(ctx, a, room.ID, "missing", "x"); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("Expected ErrMemberNotFound, got %v", err)
	}
}

func TestListTransfersPagination(t *testing.T) {
	engine, _, store := newTestEngine(t)
	ctx := context.Background()
	o := createUser(t, store, "O")
	a := createUser(t, store, "A")
	room := roomWith(t, engine, o, a)

	for range 5 {
		transfer(t, engine, room.ID, a, o, "1.00")
	}

	page, err := engine.ListTransfers(ctx, o, room.ID, 2, 2)
	if err != nil {
		t.Fatalf("ListTransfers failed: %v", err)
	}
	if page.Total != 5 || page.TotalPages != 3 || len(page.Transfers) != 2 {
		t.Errorf("Unexpected page: total=%d pages=%d len=%d", page.Total, page.TotalPages, len(page.Transfers))
	}
	for _, tr := range page.Transfers {
		if tr.PayerName != "A" || tr.PayeeName != "O" {
			t.Errorf("Unexpected names %q -> %q", tr.PayerName, tr.PayeeName)
		}
	}

	page, err = engine.ListTransfers(ctx, o, room.ID, 1, 1000)
	if err != nil {
		t.Fatalf("ListTransfers failed: %v", err)
	}
	if page.Limit != maxPageSize {
		t.Errorf("Expected limit capped at %d, got %d", maxPageSize, page.Limit)
	}
}

// failingStore fails every transfer stamp so settlements cannot commit.
type failingStore struct {
	storage.Store
}

type failingQueries struct {
	storage.Queries
}

var errInjected = errors.New("injected failure")

func (f failingQueries) MarkTransfersSettled(context.Context, string, string, []string) error {
	return errInjected
}

func (s failingStore) InTx(ctx context.Context, fn func(q storage.Queries) error) error {
	return s.Store.InTx(ctx, func(q storage.Queries) error {
		return fn(failingQueries{q})
	})
}

func TestSettlementRollsBackOnFailure(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	o := createUser(t, store, "O")
	a := createUser(t, store, "A")

	engine := New(store, nil)
	room := roomWith(t, engine, o, a)
	transfer(t, engine, room.ID, a, o, "12.34")

	broken := New(failingStore{store}, nil)
	if _, err := broken.CreateSettlement(ctx, o, room.ID); !errors.Is(err, errInjected) {
		t.Fatalf("Expected injected failure, got %v", err)
	}

	settlements, err := store.ListSettlements(ctx, room.ID)
	if err != nil {
		t.Fatalf("ListSettlements failed: %v", err)
	}
	if len(settlements) != 0 {
		t.Errorf("Expected no settlement after rollback, got %d", len(settlements))
	}
	if got := balance(t, engine, room.ID, o); got.String() != "12.34" {
		t.Errorf("Expected balance untouched, got %s", got)
	}
}

func TestConcurrentSettlementsDoNotDoubleSettle(t *testing.T) {
	engine, _, store := newTestEngine(t)
	ctx := context.Background()
	o := createUser(t, store, "O")
	a := createUser(t, store, "A")
	room := roomWith(t, engine, o, a)

	for range 4 {
		transfer(t, engine, room.ID, a, o, "2.50")
	}

	const callers = 5
	results := make([]*SettlementResult, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = engine.CreateSettlement(ctx, o, room.ID)
		}()
	}
	wg.Wait()

	settled := 0
	nonEmpty := 0
	for i := range callers {
		if errs[i] != nil {
			t.Fatalf("CreateSettlement %d failed: %v", i, errs[i])
		}
		settled += results[i].TransferCount
		if results[i].TransferCount > 0 {
			nonEmpty++
		}
	}
	if settled != 4 || nonEmpty != 1 {
		t.Errorf("Expected one settlement of 4 transfers, got %d transfers over %d settlements", settled, nonEmpty)
	}
	if got := balance(t, engine, room.ID, o); got != 0 {
		t.Errorf("Expected zero balance, got %s", got)
	}
}

func TestCheckMembership(t *testing.T) {
	engine, _, store := newTestEngine(t)
	ctx := context.Background()
	o := createUser(t, store, "O")
	a := createUser(t, store, "A")
	room := roomWith(t, engine, o)

	isMember, got, err := engine.CheckMembership(ctx, a, room.InviteCode, "")
	if err != nil {
		t.Fatalf("CheckMembership failed: %v", err)
	}
	if isMember || got.ID != room.ID {
		t.Errorf("Expected non-member of %s, got %v in %s", room.ID, isMember, got.ID)
	}

	isMember, _, err = engine.CheckMembership(ctx, o, "", room.ID)
	if err != nil || !isMember {
		t.Errorf("Expected owner to be a member, got %v (%v)", isMember, err)
	}

	if _, _, err := engine.CheckMembership(ctx, o, "nope00", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestNewInviteCode(t *testing.T) {
	for range 100 {
		code, err := newInviteCode()
		if err != nil {
			t.Fatalf("newInviteCode failed: %v", err)
		}
		if len(code) != inviteCodeLength {
			t.Fatalf("Expected length %d, got %q", inviteCodeLength, code)
		}
		for _, r := range code {
			if r == 'I' || r == 'O' {
				t.Fatalf("Code %q uses an ambiguous letter", code)
			}
		}
	}
}

func TestLeaveKeepsHistory(t *testing.T) {
	engine, _, store := newTestEngine(t)
	ctx := context.Background()
	o := createUser(t, store, "O")
	a := createUser(t, store, "A")
	room := roomWith(t, engine, o, a)

	detail, err := engine.GetRoom(ctx, a, room.ID)
	if err != nil {
		t.Fatalf("GetRoom failed: %v", err)
	}
	for _, m := range detail.Members {
		if m.UserID == a {
			if _, err := engine.UpdateNickname(ctx, a, room.ID, m.ID, "Ace"); err != nil {
				t.Fatalf("UpdateNickname failed: %v", err)
			}
		}
	}

	transfer(t, engine, room.ID, a, o, "12.50")
	if _, err := engine.CreateSettlement(ctx, o, room.ID); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}
	before, err := engine.ListTransfers(ctx, o, room.ID, 1, 20)
	if err != nil {
		t.Fatalf("ListTransfers failed: %v", err)
	}
	if before.Transfers[0].PayerName != "Ace" {
		t.Errorf("Expected nickname before leaving, got %q", before.Transfers[0].PayerName)
	}

	if _, err := engine.Leave(ctx, a, room.ID); err != nil {
		t.Fatalf("Leave failed: %v", err)
	}

	after, err := engine.ListTransfers(ctx, o, room.ID, 1, 20)
	if err != nil {
		t.Fatalf("ListTransfers failed: %v", err)
	}
	if after.Total != before.Total {
		t.Errorf("Expected %d transfers after leave, got %d", before.Total, after.Total)
	}
	if len(after.Transfers) != 1 {
		t.Fatalf("Expected 1 transfer row, got %d", len(after.Transfers))
	}
	if got := after.Transfers[0]; got.PayerID != a || got.PayerName != "A" {
		t.Errorf("Expected departed payer shown by global name, got %s %q", got.PayerID, got.PayerName)
	}

	settlements, err := engine.ListSettlements(ctx, o, room.ID)
	if err != nil {
		t.Fatalf("ListSettlements failed: %v", err)
	}
	if len(settlements) != 1 {
		t.Fatalf("Expected 1 settlement, got %d", len(settlements))
	}
	found := false
	for _, line := range settlements[0].Lines {
		if line.UserID == a {
			found = true
			if line.DisplayName != "A" {
				t.Errorf("Expected departed member's line named A, got %q", line.DisplayName)
			}
			if line.NetAmount != models.MustParseAmount("-12.50") {
				t.Errorf("Expected A's net -12.50, got %s", line.NetAmount)
			}
		}
	}
	if !found {
		t.Error("Expected settlement to keep the departed member's item")
	}
}
