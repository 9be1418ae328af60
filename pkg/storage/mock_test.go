package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/jwebster45206/tower-engine/pkg/state"
	"github.com/jwebster45206/tower-engine/pkg/storage"
)

func TestMockStorage_SaveAndLoadSession(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	ctx := context.Background()

	ps := state.NewPlayerState()
	ps.Grant(state.ItemBible)
	snap := state.NewSnapshot(uuid.New(), state.Lookout, ps)

	if err := mockStorage.SaveSession(ctx, storage.DefaultSlot, snap); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	// Mutating the caller's copy must not reach the stored one
	snap.Player.Currency = 0

	loaded, err := mockStorage.LoadSession(ctx, storage.DefaultSlot)
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected non-nil session")
	}
	if loaded.ID != snap.ID {
		t.Errorf("Expected ID %v, got %v", snap.ID, loaded.ID)
	}
	if loaded.Location != state.Lookout {
		t.Errorf("Expected location 'lookout', got %v", loaded.Location)
	}
	if loaded.Player.Currency != state.StartingCurrency {
		t.Errorf("Expected currency %d, got %d", state.StartingCurrency, loaded.Player.Currency)
	}
	if !loaded.Player.Has(state.ItemBible) {
		t.Error("Expected bible in loaded inventory")
	}
}

func TestMockStorage_LoadEmptySlot(t *testing.T) {
	mockStorage := storage.NewMockStorage()

	loaded, err := mockStorage.LoadSession(context.Background(), "nothing-here")
	if err != nil {
		t.Fatalf("Expected no error for empty slot, got: %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil session for empty slot")
	}
}

func TestMockStorage_DeleteSession(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	ctx := context.Background()

	snap := state.NewSnapshot(uuid.New(), state.Base, state.NewPlayerState())
	if err := mockStorage.SaveSession(ctx, storage.DefaultSlot, snap); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}
	if err := mockStorage.DeleteSession(ctx, storage.DefaultSlot); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}

	loaded, err := mockStorage.LoadSession(ctx, storage.DefaultSlot)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if loaded != nil {
		t.Error("Expected session to be deleted")
	}
}

func TestMockStorage_Errors(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	ctx := context.Background()
	boom := errors.New("boom")

	mockStorage.SetPingError(boom)
	if err := mockStorage.Ping(ctx); !errors.Is(err, boom) {
		t.Errorf("Expected ping error, got %v", err)
	}

	mockStorage.SetSaveError(boom)
	snap := state.NewSnapshot(uuid.New(), state.Base, state.NewPlayerState())
	if err := mockStorage.SaveSession(ctx, storage.DefaultSlot, snap); !errors.Is(err, boom) {
		t.Errorf("Expected save error, got %v", err)
	}

	mockStorage.SetLoadError(boom)
	if _, err := mockStorage.LoadSession(ctx, storage.DefaultSlot); !errors.Is(err, boom) {
		t.Errorf("Expected load error, got %v", err)
	}

	if err := mockStorage.SaveSession(ctx, storage.DefaultSlot, nil); err == nil {
		t.Error("Expected error for nil snapshot")
	}
}

func TestMockStorage_Age(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	ctx := context.Background()

	if _, ok, err := mockStorage.LoadAge(ctx); err != nil || ok {
		t.Fatalf("Expected no stored age, got ok=%v err=%v", ok, err)
	}

	if err := mockStorage.SaveAge(ctx, 17); err != nil {
		t.Fatalf("Failed to save age: %v", err)
	}
	age, ok, err := mockStorage.LoadAge(ctx)
	if err != nil || !ok || age != 17 {
		t.Errorf("Expected age 17, got %d ok=%v err=%v", age, ok, err)
	}

	mockStorage.SetAgeError(errors.New("disk full"))
	if err := mockStorage.SaveAge(ctx, 20); err == nil {
		t.Error("Expected age error")
	}
}
