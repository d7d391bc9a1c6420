package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"

	"game-with-you/store"
)

func init() {
	m.Register(func(app core.App) error {
		return store.EnsureCollections(app)
	}, func(app core.App) error {
		for _, name := range []string{store.EventsCollection, store.TicketsCollection} {
			collection, err := app.FindCollectionByNameOrId(name)
			if err != nil {
				continue
			}
			if err := app.Delete(collection); err != nil {
				return err
			}
		}
		return nil
	})
}
