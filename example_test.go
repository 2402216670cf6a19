package respool_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/respool"
	"github.com/hupe1980/respool/blobstore"
	"github.com/hupe1980/respool/connector/hub"
)

func Example() {
	ctx := context.Background()

	h := hub.New()
	a, _ := respool.New("a", blobstore.NewMemoryStore(), h)
	b, _ := respool.New("b", blobstore.NewMemoryStore(), h)
	defer a.Close()
	defer b.Close()
	_ = h.Join(a)
	_ = h.Join(b)

	_ = a.Put(ctx, "greeting", "hello")

	v, ok := b.Get(ctx, "greeting")
	fmt.Println(v, ok)
	// Output: hello true
}

func ExampleGetAs() {
	ctx := context.Background()

	p, _ := respool.New("p", blobstore.NewMemoryStore(), nil)
	defer p.Close()

	type point struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	_ = p.Put(ctx, "origin", point{X: 1, Y: 2})

	pt, ok := respool.GetAs[point](ctx, p, "origin")
	fmt.Println(pt.X, pt.Y, ok)
	// Output: 1 2 true
}

func ExamplePool_GetAll() {
	ctx := context.Background()

	h := hub.New()
	a, _ := respool.New("a", blobstore.NewMemoryStore(), h)
	b, _ := respool.New("b", blobstore.NewMemoryStore(), h)
	defer a.Close()
	defer b.Close()
	_ = h.Join(a)
	_ = h.Join(b)

	_ = a.Put(ctx, "x", 1)
	_ = b.Put(ctx, "y", 2)

	for r := range a.GetAll(ctx).All() {
		fmt.Println(r.ID(), r.Kind())
	}
	// Output:
	// a/x local
	// b/y remote
}
