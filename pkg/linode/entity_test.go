package linode_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/fivetwenty-io/linode-client/pkg/linode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFakeUnscripted = errors.New("unscripted request")

type fakeCall struct {
	Method string
	Path   string
	Query  url.Values
	Filter json.RawMessage
	Body   any
}

// fakeDoer is a scriptable transport. Every request is recorded; respond
// decides the reply.
type fakeDoer struct {
	calls   []fakeCall
	respond func(c fakeCall) ([]byte, error)
}

func (f *fakeDoer) do(c fakeCall) ([]byte, error) {
	f.calls = append(f.calls, c)

	if f.respond == nil {
		return nil, fmt.Errorf("%w: %s %s", errFakeUnscripted, c.Method, c.Path)
	}

	return f.respond(c)
}

func (f *fakeDoer) Get(ctx context.Context, path string, query url.Values, filter json.RawMessage) ([]byte, error) {
	return f.do(fakeCall{Method: "GET", Path: path, Query: query, Filter: filter})
}

func (f *fakeDoer) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return f.do(fakeCall{Method: "POST", Path: path, Body: body})
}

func (f *fakeDoer) Put(ctx context.Context, path string, body any) ([]byte, error) {
	return f.do(fakeCall{Method: "PUT", Path: path, Body: body})
}

func (f *fakeDoer) Delete(ctx context.Context, path string) ([]byte, error) {
	return f.do(fakeCall{Method: "DELETE", Path: path})
}

func instanceBody(id int, label string, tags []string) []byte {
	body, _ := json.Marshal(map[string]any{
		"id":     id,
		"label":  label,
		"region": "us-east",
		"type":   "g6-standard-2",
		"status": "running",
		"tags":   tags,
	})

	return body
}

func TestEntity_LazyLoadOnFirstGet(t *testing.T) {
	t.Parallel()

	fake := &fakeDoer{
		respond: func(c fakeCall) ([]byte, error) {
			return instanceBody(123, "web-1", []string{"prod"}), nil
		},
	}
	ctx := context.Background()

	inst, err := linode.NewEntity(fake, linode.DefaultRegistry(), linode.TypeInstance, "123")
	require.NoError(t, err)

	// Construction is free.
	assert.Empty(t, fake.calls)
	assert.False(t, inst.Loaded())

	label, err := inst.GetString(ctx, "label")
	require.NoError(t, err)
	assert.Equal(t, "web-1", label)
	require.Len(t, fake.calls, 1)
	assert.Equal(t, "GET", fake.calls[0].Method)
	assert.Equal(t, "linode/instances/123", fake.calls[0].Path)

	// Every scalar came with the body, so further reads are free.
	region, err := inst.GetString(ctx, "region")
	require.NoError(t, err)
	assert.Equal(t, "us-east", region)

	status, err := inst.GetString(ctx, "status")
	require.NoError(t, err)
	assert.Equal(t, "running", status)
	assert.Len(t, fake.calls, 1)
	assert.True(t, inst.Loaded())
}

func TestEntity_SaveSendsOnlyDirtyFields(t *testing.T) {
	t.Parallel()

	fake := &fakeDoer{
		respond: func(c fakeCall) ([]byte, error) {
			if c.Method == "PUT" {
				return instanceBody(123, "renamed", []string{"prod"}), nil
			}

			return instanceBody(123, "web-1", []string{"prod"}), nil
		},
	}
	ctx := context.Background()

	inst, err := linode.NewEntity(fake, linode.DefaultRegistry(), linode.TypeInstance, "123")
	require.NoError(t, err)

	_, err = inst.Get(ctx, "label")
	require.NoError(t, err)

	require.NoError(t, inst.Set("label", "renamed"))
	assert.Equal(t, []string{"label"}, inst.Dirty())

	require.NoError(t, inst.Save(ctx))
	require.Len(t, fake.calls, 2)
	assert.Equal(t, "PUT", fake.calls[1].Method)
	assert.Equal(t, "linode/instances/123", fake.calls[1].Path)

	payload, ok := fake.calls[1].Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"label": "renamed"}, payload)

	// Server response merged, tags untouched, dirty set cleared.
	assert.Empty(t, inst.Dirty())

	tags, err := inst.Get(ctx, "tags")
	require.NoError(t, err)
	assert.Equal(t, []any{"prod"}, tags)
	assert.Len(t, fake.calls, 2)
}

func TestEntity_SaveWithNoDirtyFieldsIsFree(t *testing.T) {
	t.Parallel()

	fake := &fakeDoer{}
	ctx := context.Background()

	inst, err := linode.NewEntity(fake, linode.DefaultRegistry(), linode.TypeInstance, "123")
	require.NoError(t, err)

	require.NoError(t, inst.Save(ctx))
	assert.Empty(t, fake.calls)
}

func TestEntity_SetWithoutLoadSkipsFetchOnSave(t *testing.T) {
	t.Parallel()

	fake := &fakeDoer{
		respond: func(c fakeCall) ([]byte, error) {
			return instanceBody(123, "renamed", []string{"prod"}), nil
		},
	}
	ctx := context.Background()

	inst, err := linode.NewEntity(fake, linode.DefaultRegistry(), linode.TypeInstance, "123")
	require.NoError(t, err)

	// Write-only update: no read means no fetch, just the PUT.
	require.NoError(t, inst.Set("label", "renamed"))
	require.NoError(t, inst.Save(ctx))

	require.Len(t, fake.calls, 1)
	assert.Equal(t, "PUT", fake.calls[0].Method)
}

func TestEntity_SetValidation(t *testing.T) {
	t.Parallel()

	inst, err := linode.NewEntity(&fakeDoer{}, linode.DefaultRegistry(), linode.TypeInstance, "123")
	require.NoError(t, err)

	err = inst.Set("nonsense", "x")
	require.ErrorIs(t, err, linode.ErrUnknownField)

	err = inst.Set("status", "running")
	require.ErrorIs(t, err, linode.ErrImmutableField)

	err = inst.Set("label", 42)
	require.ErrorIs(t, err, linode.ErrTypeMismatch)

	// Failed sets leave nothing dirty.
	assert.Empty(t, inst.Dirty())
}

func TestEntity_SetAlwaysDirties(t *testing.T) {
	t.Parallel()

	fake := &fakeDoer{
		respond: func(c fakeCall) ([]byte, error) {
			return instanceBody(123, "web-1", []string{"prod"}), nil
		},
	}
	ctx := context.Background()

	inst, err := linode.NewEntity(fake, linode.DefaultRegistry(), linode.TypeInstance, "123")
	require.NoError(t, err)

	_, err = inst.Get(ctx, "label")
	require.NoError(t, err)

	// Assigning the value already cached still dirties the field.
	require.NoError(t, inst.Set("label", "web-1"))
	assert.Equal(t, []string{"label"}, inst.Dirty())
}

func TestEntity_DirtyValueSurvivesRefresh(t *testing.T) {
	t.Parallel()

	fake := &fakeDoer{
		respond: func(c fakeCall) ([]byte, error) {
			return instanceBody(123, "server-copy", []string{"prod"}), nil
		},
	}
	ctx := context.Background()

	inst, err := linode.NewEntity(fake, linode.DefaultRegistry(), linode.TypeInstance, "123")
	require.NoError(t, err)

	require.NoError(t, inst.Set("label", "local-edit"))
	require.NoError(t, inst.Refresh(ctx))

	label, err := inst.GetString(ctx, "label")
	require.NoError(t, err)
	assert.Equal(t, "local-edit", label)

	// Non-dirty fields took the server values.
	region, err := inst.GetString(ctx, "region")
	require.NoError(t, err)
	assert.Equal(t, "us-east", region)
}

func TestEntity_InvalidateForcesRefetch(t *testing.T) {
	t.Parallel()

	labels := []string{"first", "second"}
	fetches := 0
	fake := &fakeDoer{}
	fake.respond = func(c fakeCall) ([]byte, error) {
		body := instanceBody(123, labels[fetches], nil)
		fetches++

		return body, nil
	}
	ctx := context.Background()

	inst, err := linode.NewEntity(fake, linode.DefaultRegistry(), linode.TypeInstance, "123")
	require.NoError(t, err)

	label, err := inst.GetString(ctx, "label")
	require.NoError(t, err)
	assert.Equal(t, "first", label)

	// Cached until invalidated.
	label, err = inst.GetString(ctx, "label")
	require.NoError(t, err)
	assert.Equal(t, "first", label)
	assert.Equal(t, 1, fetches)

	inst.Invalidate()

	label, err = inst.GetString(ctx, "label")
	require.NoError(t, err)
	assert.Equal(t, "second", label)
	assert.Equal(t, 2, fetches)
}

func TestEntity_DeleteMakesHandleGone(t *testing.T) {
	t.Parallel()

	fake := &fakeDoer{
		respond: func(c fakeCall) ([]byte, error) {
			return []byte("{}"), nil
		},
	}
	ctx := context.Background()

	inst, err := linode.NewEntity(fake, linode.DefaultRegistry(), linode.TypeInstance, "123")
	require.NoError(t, err)

	require.NoError(t, inst.Delete(ctx))
	assert.True(t, inst.Gone())
	require.Len(t, fake.calls, 1)
	assert.Equal(t, "DELETE", fake.calls[0].Method)

	// Every operation on a gone handle fails without touching the wire.
	_, err = inst.Get(ctx, "label")
	require.ErrorIs(t, err, linode.ErrGone)

	err = inst.Set("label", "x")
	require.ErrorIs(t, err, linode.ErrGone)

	err = inst.Save(ctx)
	require.ErrorIs(t, err, linode.ErrGone)

	err = inst.Delete(ctx)
	require.ErrorIs(t, err, linode.ErrGone)

	err = inst.Refresh(ctx)
	require.ErrorIs(t, err, linode.ErrGone)

	assert.Len(t, fake.calls, 1)
}

func TestEntity_EqualityByTypeAndID(t *testing.T) {
	t.Parallel()

	registry := linode.DefaultRegistry()

	a, err := linode.NewEntity(&fakeDoer{}, registry, linode.TypeInstance, "123")
	require.NoError(t, err)

	b, err := linode.NewEntity(&fakeDoer{}, registry, linode.TypeInstance, "123")
	require.NoError(t, err)

	c, err := linode.NewEntity(&fakeDoer{}, registry, linode.TypeInstance, "456")
	require.NoError(t, err)

	d, err := linode.NewEntity(&fakeDoer{}, registry, linode.TypeVolume, "123")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
	assert.False(t, a.Equal(nil))

	// Keys are comparable map keys.
	seen := map[linode.EntityKey]bool{a.Key(): true}
	assert.True(t, seen[b.Key()])
	assert.False(t, seen[c.Key()])
}

func TestEntity_DerivedCollection(t *testing.T) {
	t.Parallel()

	fake := &fakeDoer{
		respond: func(c fakeCall) ([]byte, error) {
			require.Equal(t, "linode/instances/123/disks", c.Path)

			return []byte(`{
				"data": [
					{"id": 1, "label": "boot", "size": 25000},
					{"id": 2, "label": "swap", "size": 512}
				],
				"page": 1, "pages": 1, "results": 2
			}`), nil
		},
	}
	ctx := context.Background()

	inst, err := linode.NewEntity(fake, linode.DefaultRegistry(), linode.TypeInstance, "123")
	require.NoError(t, err)

	_, disks, err := inst.Relation(ctx, "disks")
	require.NoError(t, err)
	require.NotNil(t, disks)

	// The relation fetch did not fetch the instance body.
	require.Len(t, fake.calls, 1)

	n, err := disks.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	boot, err := disks.At(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "1", boot.ID())
	assert.Equal(t, linode.TypeDisk, boot.Type())

	label, err := boot.GetString(ctx, "label")
	require.NoError(t, err)
	assert.Equal(t, "boot", label)

	// Relation and elements were served from the page fetch alone.
	assert.Len(t, fake.calls, 1)

	// Second access reuses the cached relation.
	_, again, err := inst.Relation(ctx, "disks")
	require.NoError(t, err)
	assert.Same(t, disks, again)
	assert.Len(t, fake.calls, 1)
}

func TestEntity_DerivedSingleton(t *testing.T) {
	t.Parallel()

	fake := &fakeDoer{
		respond: func(c fakeCall) ([]byte, error) {
			require.Equal(t, "linode/instances/123/ips", c.Path)

			return []byte(`{"ipv4": {"public": [{"address": "203.0.113.5"}]}}`), nil
		},
	}
	ctx := context.Background()

	inst, err := linode.NewEntity(fake, linode.DefaultRegistry(), linode.TypeInstance, "123")
	require.NoError(t, err)

	ips, _, err := inst.Relation(ctx, "ips")
	require.NoError(t, err)
	require.NotNil(t, ips)
	assert.Equal(t, linode.TypeInstanceIPs, ips.Type())
	assert.Len(t, fake.calls, 1)
}

func TestEntity_GetUnknownField(t *testing.T) {
	t.Parallel()

	inst, err := linode.NewEntity(&fakeDoer{}, linode.DefaultRegistry(), linode.TypeInstance, "123")
	require.NoError(t, err)

	_, err = inst.Get(context.Background(), "nonsense")
	require.ErrorIs(t, err, linode.ErrUnknownField)
}

func TestEntity_FailedSaveKeepsDirtySet(t *testing.T) {
	t.Parallel()

	fake := &fakeDoer{
		respond: func(c fakeCall) ([]byte, error) {
			return nil, linode.NewError(400, []byte(`{"errors": [{"reason": "label too long", "field": "label"}]}`))
		},
	}
	ctx := context.Background()

	inst, err := linode.NewEntity(fake, linode.DefaultRegistry(), linode.TypeInstance, "123")
	require.NoError(t, err)

	require.NoError(t, inst.Set("label", "x"))

	err = inst.Save(ctx)
	require.Error(t, err)
	assert.True(t, linode.IsValidationFailed(err))

	// Retry still sends the field.
	assert.Equal(t, []string{"label"}, inst.Dirty())
}
