package resource

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingConnector struct {
	values map[ID]any
	reads  int
}

func (c *countingConnector) GetAllResources(context.Context) (*Set, error) {
	s := NewSet()
	for id := range c.values {
		s.Add(NewRemote(id, c))
	}
	return s, nil
}

func (c *countingConnector) ReadResource(_ context.Context, id ID) (any, bool) {
	c.reads++
	v, ok := c.values[id]
	return v, ok
}

func TestID(t *testing.T) {
	id := NewID("pool1", "a/b")
	assert.Equal(t, "pool1/a/b", id.String())

	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseID("nopool")
	assert.ErrorIs(t, err, ErrInvalidID)
	_, err = ParseID("/name")
	assert.ErrorIs(t, err, ErrInvalidID)

	assert.True(t, ID{}.IsZero())
	assert.NotEqual(t, NewID("a", "x"), NewID("b", "x"))
}

func TestResource_Local(t *testing.T) {
	r := NewLocal(NewID("p", "n"), "Test")
	assert.True(t, r.IsLocal())
	assert.False(t, r.IsRemote())
	assert.Equal(t, KindLocal, r.Kind())

	v, ok := r.Value(context.Background())
	require.True(t, ok)
	assert.Equal(t, "Test", v)
}

func TestResource_RemoteIsNotCached(t *testing.T) {
	id := NewID("remote", "n")
	c := &countingConnector{values: map[ID]any{id: "v1"}}
	r := NewRemote(id, c)

	v, ok := r.Value(context.Background())
	require.True(t, ok)
	assert.Equal(t, "v1", v)

	c.values[id] = "v2"
	v, ok = r.Value(context.Background())
	require.True(t, ok)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 2, c.reads)
}

func TestResource_RemoteFailures(t *testing.T) {
	id := NewID("remote", "missing")
	c := &countingConnector{values: map[ID]any{}}

	_, ok := NewRemote(id, c).Value(context.Background())
	assert.False(t, ok)

	_, ok = NewRemote(id, nil).Value(context.Background())
	assert.False(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok = NewRemote(id, c).Value(ctx)
	assert.False(t, ok)
	assert.Equal(t, 1, c.reads)

	_, ok = Resource{}.Value(context.Background())
	assert.False(t, ok)
}

func TestSet_Dedup(t *testing.T) {
	a := NewLocal(NewID("p", "a"), 1)
	dup := NewLocal(NewID("p", "a"), 2)
	b := NewLocal(NewID("q", "a"), 3)

	s := NewSet(a, dup, b)
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Add(dup))

	got, ok := s.Get(NewID("p", "a"))
	require.True(t, ok)
	v, _ := got.Value(context.Background())
	assert.Equal(t, 1, v)
	assert.True(t, s.Contains(NewID("q", "a")))
	assert.False(t, s.Contains(NewID("q", "b")))
}

func TestSet_UnionPrecedence(t *testing.T) {
	c := &countingConnector{}
	local := NewSet(NewLocal(NewID("p", "a"), "local"))
	remote := NewSet(
		NewRemote(NewID("p", "a"), c),
		NewRemote(NewID("q", "b"), c),
	)

	u := local.Union(remote)
	require.Equal(t, 2, u.Len())

	first, ok := u.Get(NewID("p", "a"))
	require.True(t, ok)
	assert.True(t, first.IsLocal())

	// Inputs are not modified.
	assert.Equal(t, 1, local.Len())
	assert.Equal(t, 2, remote.Len())

	// Order is receiver first, then new entries of other.
	ids := []ID{}
	for r := range u.All() {
		ids = append(ids, r.ID())
	}
	assert.Equal(t, []ID{NewID("p", "a"), NewID("q", "b")}, ids)
}

func TestSet_Filters(t *testing.T) {
	s := NewSet(
		NewLocal(NewID("p", "df_users"), nil),
		NewLocal(NewID("p", "df_orders"), nil),
		NewLocal(NewID("q", "df_users"), nil),
		NewLocal(NewID("q", "model"), nil),
	)

	assert.Equal(t, 2, s.FilterByName("df_users").Len())
	assert.Equal(t, 2, s.FilterByPool("q").Len())

	re, err := s.FilterByNameRegex("^df_")
	require.NoError(t, err)
	assert.Equal(t, 3, re.Len())

	_, err = s.FilterByNameRegex("(")
	assert.Error(t, err)
}

func TestSet_NilSafe(t *testing.T) {
	var s *Set
	assert.Zero(t, s.Len())
	assert.Nil(t, s.Resources())
	_, ok := s.Get(NewID("p", "n"))
	assert.False(t, ok)
	for range s.All() {
		t.Fatal("nil set yielded a resource")
	}
	assert.Equal(t, 1, NewSet(NewLocal(NewID("p", "n"), 1)).Union(s).Len())
}

func TestSet_JSON(t *testing.T) {
	c := &countingConnector{values: map[ID]any{NewID("p", "a"): "A"}}
	s := NewSet(
		NewLocal(NewID("p", "a"), "A"),
		NewRemote(NewID("q", "b"), c),
	)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id":{"pool":"p","name":"a"},"kind":"local"},
		{"id":{"pool":"q","name":"b"},"kind":"remote"}
	]`, string(data))

	decoded, err := DecodeSet(data, c)
	require.NoError(t, err)
	require.Equal(t, 2, decoded.Len())
	for r := range decoded.All() {
		assert.True(t, r.IsRemote())
	}

	r, _ := decoded.Get(NewID("p", "a"))
	v, ok := r.Value(context.Background())
	require.True(t, ok)
	assert.Equal(t, "A", v)

	_, err = DecodeSet([]byte(`[{"id":{"pool":"","name":"x"}}]`), c)
	assert.ErrorIs(t, err, ErrInvalidID)
	_, err = DecodeSet([]byte(`{`), c)
	assert.Error(t, err)
}

type notebook struct {
	Title   string        `json:"title"`
	Cells   int           `json:"cells"`
	Timeout time.Duration `json:"timeout"`
}

func TestAs(t *testing.T) {
	s, err := As[string]("Test")
	require.NoError(t, err)
	assert.Equal(t, "Test", s)

	n, err := As[int](float64(42))
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	nb, err := As[notebook](map[string]any{"title": "intro", "cells": float64(3), "timeout": "2s"})
	require.NoError(t, err)
	assert.Equal(t, notebook{Title: "intro", Cells: 3, Timeout: 2 * time.Second}, nb)

	_, err = As[[]int]("not a list")
	assert.Error(t, err)
}
