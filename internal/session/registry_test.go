package session

import (
	"testing"
	"time"

	"kpiboard/domain/table"
	"kpiboard/internal/errors"
)

func testEntry(filename string) Entry {
	tbl := table.New([]string{"V"}, [][]string{{"1"}, {"2"}})
	return Entry{Filename: filename, Table: tbl, SourceRows: 2}
}

func TestRegistry_PutGet(t *testing.T) {
	r := NewRegistry(time.Hour, time.Hour)
	defer r.Close()

	stored := r.Put(testEntry("sales.xlsx"))
	if stored.ID.IsEmpty() {
		t.Fatal("Put should assign an id")
	}

	got, err := r.Get(stored.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Filename != "sales.xlsx" {
		t.Errorf("Filename = %q, want sales.xlsx", got.Filename)
	}
	if got.Table.RowCount() != 2 {
		t.Errorf("RowCount = %d, want 2", got.Table.RowCount())
	}
}

func TestRegistry_GetUnknownID(t *testing.T) {
	r := NewRegistry(time.Hour, time.Hour)
	defer r.Close()

	_, err := r.Get("no-such-id")
	if !errors.HasCode(err, errors.CodeNotFound) {
		t.Errorf("error = %v, want code %s", err, errors.CodeNotFound)
	}
}

func TestRegistry_GetTouchesIdleClock(t *testing.T) {
	r := NewRegistry(time.Hour, time.Hour)
	defer r.Close()

	stored := r.Put(testEntry("a.csv"))
	first, _ := r.Get(stored.ID)
	second, _ := r.Get(stored.ID)
	if second.LastSeen.Before(first.LastSeen) {
		t.Errorf("LastSeen went backwards: %v then %v", first.LastSeen, second.LastSeen)
	}
}

func TestRegistry_Delete(t *testing.T) {
	r := NewRegistry(time.Hour, time.Hour)
	defer r.Close()

	stored := r.Put(testEntry("a.csv"))
	if !r.Delete(stored.ID) {
		t.Error("Delete of existing entry should report true")
	}
	if r.Delete(stored.ID) {
		t.Error("second Delete should report false")
	}
	if _, err := r.Get(stored.ID); !errors.HasCode(err, errors.CodeNotFound) {
		t.Errorf("Get after delete = %v, want code %s", err, errors.CodeNotFound)
	}
}

func TestRegistry_SweepEvictsIdleEntries(t *testing.T) {
	r := NewRegistry(time.Minute, time.Hour)
	defer r.Close()

	r.Put(testEntry("a.csv"))
	r.Put(testEntry("b.csv"))

	if removed := r.sweep(time.Now()); removed != 0 {
		t.Errorf("fresh entries swept: %d", removed)
	}
	if removed := r.sweep(time.Now().Add(2 * time.Minute)); removed != 2 {
		t.Errorf("swept %d entries, want 2", removed)
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0 after sweep", r.Len())
	}
}

func TestRegistry_ListNewestFirst(t *testing.T) {
	r := NewRegistry(time.Hour, time.Hour)
	defer r.Close()

	first := r.Put(testEntry("first.csv"))
	time.Sleep(2 * time.Millisecond)
	second := r.Put(testEntry("second.csv"))

	list := r.List()
	if len(list) != 2 {
		t.Fatalf("List len = %d, want 2", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("List order = [%s %s], want newest first", list[0].Filename, list[1].Filename)
	}
}

func TestRegistry_CloseIdempotent(t *testing.T) {
	r := NewRegistry(time.Hour, time.Minute)
	r.Close()
	r.Close()
}
