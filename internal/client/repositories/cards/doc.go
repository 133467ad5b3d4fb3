// Package cards is the client-side persistence layer for diary cards.
//
// Cards are kept in a local SQLite table in insertion order, so the list can
// be shown before the server answers. A card created while the server is
// unreachable stays pending until it is pushed.
//
// Typical Usage
//
//	repo := cards.NewSQLiteRepository(db)
//	_ = repo.Insert(ctx, &card)
//	list, _ := repo.GetAll(ctx)
//	pend, _ := repo.GetAllPending(ctx)
//	_ = repo.MarkSynced(ctx, card.ID)
package cards
