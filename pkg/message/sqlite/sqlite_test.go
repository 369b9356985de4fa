package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	yerrors "github.com/matzehuels/yuletree/pkg/errors"
	"github.com/matzehuels/yuletree/pkg/message"
)

func openTemp(t *testing.T, seed []message.Message) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "messages.db")
	s, err := Open(context.Background(), path, seed)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestOpenSeedsEmptyDatabase(t *testing.T) {
	seed, _ := message.Seed("en")
	s, _ := openTemp(t, seed)

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if diff := cmp.Diff(seed, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestReopenDoesNotReseed(t *testing.T) {
	ctx := context.Background()
	seed, _ := message.Seed("pt")
	s, path := openTemp(t, seed)
	if _, err := s.Create(ctx, "Feliz ano novo"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	s.Close()

	again, err := Open(ctx, path, seed)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer again.Close()

	got, err := again.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(seed)+1 {
		t.Fatalf("len(List()) = %d, want %d", len(got), len(seed)+1)
	}
	if last := got[len(got)-1]; last.ID != 13 || last.Text != "Feliz ano novo" {
		t.Errorf("last message = %+v, want {13 Feliz ano novo}", last)
	}
}

func TestCreateValidates(t *testing.T) {
	s, _ := openTemp(t, nil)
	if _, err := s.Create(context.Background(), ""); !yerrors.Is(err, yerrors.ErrCodeInvalidMessage) {
		t.Errorf("Create(\"\") error = %v, want %v", err, yerrors.ErrCodeInvalidMessage)
	}

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.db")
	for i := range 2 {
		if err := Migrate(path); err != nil {
			t.Fatalf("Migrate() run %d error: %v", i, err)
		}
	}
}
