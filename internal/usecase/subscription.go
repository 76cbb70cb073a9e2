package usecase

import (
	"context"

	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/view"
)

var subscriptionSpec = view.ToggleSpec{
	Collection:  "subscriptions",
	ActorField:  "subscriber_id",
	TargetField: "channel_id",
}

type SubscriptionUsecase struct {
	store     view.Store
	relations view.RelationStore
}

func NewSubscriptionUsecase(store view.Store, relations view.RelationStore) *SubscriptionUsecase {
	return &SubscriptionUsecase{store: store, relations: relations}
}

// Toggle flips the actor's subscription to a channel. Subscribing to
// yourself is rejected before the store is touched.
func (uc *SubscriptionUsecase) Toggle(ctx context.Context, actor, channelID view.ID) (view.ToggleState, error) {
	if actor == channelID {
		return "", domain.ValidationError{Reason: "cannot subscribe to your own channel"}
	}
	return view.Toggle(ctx, uc.relations, subscriptionSpec, actor, channelID)
}

// Subscribers lists the subscribers of the requested channel. The filter
// is on the requested channel id, not the caller's.
func (uc *SubscriptionUsecase) Subscribers(ctx context.Context, channelID view.ID, pg view.Page) (*view.Result, error) {
	return view.From("subscriptions").
		Filter("channel_id", channelID.String()).
		Join(view.Join{
			From:       "subscriber_id",
			Collection: "users",
			To:         "id",
			As:         "subscriber",
			One:        true,
			Fields:     publicProfileFields,
		}).
		Project("id", "created_at", "subscriber").
		ExecutePage(ctx, uc.store, pg)
}

// SubscribedChannels lists the channels a user subscribes to.
func (uc *SubscriptionUsecase) SubscribedChannels(ctx context.Context, subscriberID view.ID, pg view.Page) (*view.Result, error) {
	return view.From("subscriptions").
		Filter("subscriber_id", subscriberID.String()).
		Join(view.Join{
			From:       "channel_id",
			Collection: "users",
			To:         "id",
			As:         "channel",
			One:        true,
			Fields:     publicProfileFields,
		}).
		Project("id", "created_at", "channel").
		ExecutePage(ctx, uc.store, pg)
}
