package sessions

import (
	"context"
	"encoding/json"
	"fmt"
)

// OpenedKey holds the set of days a session has retrieved.
const OpenedKey = "images"

func GetOpened(ctx context.Context, store Store, sessionId string) (map[int]bool, error) {
	opened := make(map[int]bool)
	if sessionId == "" {
		return opened, nil
	}
	b, found, err := store.Get(ctx, sessionId, OpenedKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return opened, nil
	}
	if err = json.Unmarshal(b, &opened); err != nil {
		return nil, fmt.Errorf("decoding opened days: %w", err)
	}
	return opened, nil
}

// MarkOpened records the day as opened. Concurrent requests from the same session may race; the
// last write wins.
func MarkOpened(ctx context.Context, store Store, sessionId string, day int) error {
	if sessionId == "" {
		return nil
	}
	opened, err := GetOpened(ctx, store, sessionId)
	if err != nil {
		return err
	}
	if opened[day] {
		return nil
	}
	opened[day] = true
	b, err := json.Marshal(opened)
	if err != nil {
		return err
	}
	return store.Set(ctx, sessionId, OpenedKey, b)
}
