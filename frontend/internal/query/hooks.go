package query

import (
	"context"
	"encoding/json"

	"github.com/aribt/hackathon-cms/frontend/internal/apiclient"
	"github.com/aribt/hackathon-cms/frontend/internal/notify"
	"github.com/aribt/hackathon-cms/shared/domain"
)

// Hooks is the entry point for views: one binding per backend collection,
// all sharing one cache.
type Hooks struct {
	Client   *apiclient.APIClient
	Cache    *Cache
	Notifier notify.Notifier

	Auth          *Auth
	Sponsors      *Collection[domain.Sponsor]
	Partners      *Collection[domain.Partner]
	TeamMembers   *Collection[domain.TeamMember]
	Registrations *Registrations
	HackathonInfo *HackathonInfo
	Hackers       *Collection[domain.Hacker]
}

type Options struct {
	// StatusField is the registration field written by status updates.
	StatusField string
}

func New(client *apiclient.APIClient, notifier notify.Notifier, opts Options) *Hooks {
	if opts.StatusField == "" {
		opts.StatusField = "verified"
	}
	if notifier == nil {
		notifier = notify.Discard{}
	}
	h := &Hooks{Client: client, Cache: NewCache(), Notifier: notifier}

	h.Auth = newAuth(h)
	h.Sponsors = Bind(h, apiclient.Sponsors, Messages{
		Created: "Sponsor added successfully!",
		Updated: "Sponsor updated successfully!",
		Deleted: "Sponsor removed successfully!",
	})
	h.Partners = Bind(h, apiclient.Partners, Messages{
		Created: "Partner added successfully!",
		Updated: "Partner updated successfully!",
		Deleted: "Partner removed successfully!",
	})
	h.TeamMembers = Bind(h, apiclient.TeamMembers, Messages{
		Created: "Team member added successfully!",
		Updated: "Team member updated successfully!",
		Deleted: "Team member removed successfully!",
	})
	h.Registrations = newRegistrations(h, opts.StatusField)
	h.HackathonInfo = newHackathonInfo(h)
	h.Hackers = Bind(h, apiclient.Hackers, Messages{
		Created: "Team created successfully!",
		Updated: "Team updated successfully!",
		Deleted: "Team deleted successfully!",
	})
	return h
}

// Messages are the toasts shown after each successful write.
type Messages struct {
	Created, Updated, Deleted string
}

type UpdateArgs struct {
	ID      domain.ID
	Payload any
}

// MakeReader returns a reader of the whole collection r, stored under r.Key.
func MakeReader[T any](h *Hooks, r apiclient.Resource[T]) *Reader[[]T] {
	return NewReader(h.Cache, Key{Name: r.Key}, []T{}, func(ctx context.Context) ([]T, error) {
		return apiclient.ListOf(ctx, h.Client, r)
	})
}

// MakeItemReader returns a reader of one record, stored under (r.Key, id).
func MakeItemReader[T any](h *Hooks, r apiclient.Resource[T], id domain.ID) *Reader[T] {
	var zero T
	return NewReader(h.Cache, Key{Name: r.Key, ID: id}, zero, func(ctx context.Context) (T, error) {
		return apiclient.GetOf(ctx, h.Client, r, id)
	})
}

func MakeCreator[T any](h *Hooks, r apiclient.Resource[T], msg string) *Mutation[any] {
	return NewMutation(h.Cache, r.Key, h.Notifier, func(ctx context.Context, payload any) (json.RawMessage, error) {
		return h.Client.Create(ctx, r.Endpoint, payload)
	}, fixed[any](msg))
}

func MakeUpdater[T any](h *Hooks, r apiclient.Resource[T], msg string) *Mutation[UpdateArgs] {
	return NewMutation(h.Cache, r.Key, h.Notifier, func(ctx context.Context, args UpdateArgs) (json.RawMessage, error) {
		return h.Client.Update(ctx, r.Endpoint, args.ID, args.Payload)
	}, fixed[UpdateArgs](msg))
}

func MakeRemover[T any](h *Hooks, r apiclient.Resource[T], msg string) *Mutation[domain.ID] {
	return NewMutation(h.Cache, r.Key, h.Notifier, func(ctx context.Context, id domain.ID) (json.RawMessage, error) {
		return h.Client.Remove(ctx, r.Endpoint, id)
	}, fixed[domain.ID](msg))
}

// Collection is the read/write contract shared by every list-shaped resource.
type Collection[T any] struct {
	Resource apiclient.Resource[T]
	Create   *Mutation[any]
	Update   *Mutation[UpdateArgs]
	Delete   *Mutation[domain.ID]

	hooks *Hooks
	list  *Reader[[]T]
}

func Bind[T any](h *Hooks, r apiclient.Resource[T], msgs Messages) *Collection[T] {
	return &Collection[T]{
		Resource: r,
		Create:   MakeCreator(h, r, msgs.Created),
		Update:   MakeUpdater(h, r, msgs.Updated),
		Delete:   MakeRemover(h, r, msgs.Deleted),
		hooks:    h,
		list:     MakeReader(h, r),
	}
}

// List reads the collection, fetching when needed.
func (c *Collection[T]) List(ctx context.Context) Snapshot[[]T] {
	return c.list.Read(ctx)
}

func (c *Collection[T]) Lister() *Reader[[]T] {
	return c.list
}

// Get reads one record, fetching when needed.
func (c *Collection[T]) Get(ctx context.Context, id domain.ID) Snapshot[T] {
	return c.Item(id).Read(ctx)
}

// Item returns a reader for one record. Readers hold no state of their own,
// so one is built per call and nothing outlives the cache entry.
func (c *Collection[T]) Item(id domain.ID) *Reader[T] {
	return MakeItemReader(c.hooks, c.Resource, id)
}
