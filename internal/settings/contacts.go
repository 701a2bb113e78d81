package settings

import (
	"context"
	"errors"
	"reflect"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/mealmate/backend/internal/client"
	"github.com/pageza/mealmate/backend/internal/model"
)

const contactFetchLimit = 4

// RefreshContacts re-fetches every contact summary and saves the list when
// anything changed. Contacts whose account is gone are dropped.
func (b *Bridge) RefreshContacts(ctx context.Context, st *State) (*State, error) {
	fresh := make([]*model.UserSummary, len(st.Contacts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(contactFetchLimit)
	for i, contact := range st.Contacts {
		i, contact := i, contact
		g.Go(func() error {
			u, err := b.api.UserByID(gctx, contact.ID)
			if errors.Is(err, client.ErrNotFound) {
				b.log.Info("dropping deleted contact", zap.String("contact_id", contact.ID))
				return nil
			}
			if err != nil {
				return err
			}
			fresh[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	contacts := make([]model.UserSummary, 0, len(fresh))
	for _, u := range fresh {
		if u != nil {
			contacts = append(contacts, *u)
		}
	}
	if reflect.DeepEqual(contacts, st.Contacts) {
		return st, nil
	}
	return b.Update(ctx, st.UserID(), model.SettingContacts, contacts)
}
