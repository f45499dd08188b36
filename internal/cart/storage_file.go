package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStorage keeps the cart snapshot as a single JSON file named after
// the fixed storage key. A missing file is an empty cart.
type FileStorage struct {
	path string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cart data dir: %w", err)
	}
	return &FileStorage{path: filepath.Join(dir, StorageKey+".json")}, nil
}

func (f *FileStorage) Load(_ context.Context) ([]LineItem, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cart file: %w", err)
	}

	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse cart file: %w", err)
	}
	return items, nil
}

func (f *FileStorage) Save(_ context.Context, items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write cart file: %w", err)
	}
	return nil
}
