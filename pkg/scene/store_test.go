package scene

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/canvasnap/pkg/errors"
)

// storeContract exercises the behavior every Store backend must share.
func storeContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Get(ctx, "wheel"); !errors.Is(err, errors.ErrCodeSceneNotFound) {
		t.Fatalf("Get(missing) error = %v, want SCENE_NOT_FOUND", err)
	}

	s := testScene()
	if err := store.Put(ctx, s); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if s.UpdatedAt.IsZero() {
		t.Error("Put() should stamp UpdatedAt")
	}

	got, err := store.Get(ctx, "wheel")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if len(got.Elements) != 3 || got.Name != "Wheel of fortune" {
		t.Errorf("Get() = %+v", got)
	}

	// Last write wins.
	s.Elements = s.Elements[:1]
	if err := store.Put(ctx, s); err != nil {
		t.Fatalf("second Put() error: %v", err)
	}
	got, _ = store.Get(ctx, "wheel")
	if len(got.Elements) != 1 {
		t.Errorf("after overwrite len(Elements) = %d, want 1", len(got.Elements))
	}

	if err := store.Delete(ctx, "wheel"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := store.Delete(ctx, "wheel"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
	if _, err := store.Get(ctx, "wheel"); !errors.Is(err, errors.ErrCodeSceneNotFound) {
		t.Errorf("Get(deleted) error = %v, want SCENE_NOT_FOUND", err)
	}

	bad := testScene()
	bad.Elements[1].ID = bad.Elements[0].ID
	if err := store.Put(ctx, bad); !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("Put(invalid) error = %v, want INVALID_SCENE", err)
	}

	traversal := testScene()
	traversal.ID = "../escape"
	if err := store.Put(ctx, traversal); !errors.Is(err, errors.ErrCodeInvalidID) {
		t.Errorf("Put(../escape) error = %v, want INVALID_ID", err)
	}
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	defer store.Close()

	storeContract(t, store)
}

func TestFileStoreCorruptFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	if err := os.WriteFile(store.path("broken"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err = store.Get(context.Background(), "broken")
	if !errors.Is(err, errors.ErrCodeStorage) {
		t.Errorf("Get(corrupt) error = %v, want STORAGE_ERROR", err)
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("CANVASNAP_TEST_MONGO")
	if uri == "" {
		t.Skip("CANVASNAP_TEST_MONGO not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := NewMongoStore(ctx, MongoConfig{
		URI:        uri,
		Database:   "canvasnap_test",
		Collection: "scenes_" + time.Now().Format("150405.000000"),
	})
	if err != nil {
		t.Fatalf("NewMongoStore() error: %v", err)
	}
	defer func() {
		_ = store.coll.Drop(context.Background())
		store.Close()
	}()

	storeContract(t, store)
}
