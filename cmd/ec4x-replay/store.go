package main

import (
	"context"
	"time"

	"github.com/greenm01/ec4x/internal/persistence"
	"github.com/greenm01/ec4x/internal/persistence/mongostore"
)

func openStore() (persistence.Store, error) {
	if mongoURI == "" {
		return persistence.NewMemoryStore(), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	st, err := mongostore.Connect(ctx, mongoURI, databaseFlag)
	if err != nil {
		return nil, err
	}
	return st, nil
}
