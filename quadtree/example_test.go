package quadtree_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/quadgrid/geom"
	"github.com/hupe1980/quadgrid/quadtree"
)

type city struct {
	name string
	pos  geom.Point
}

func (c *city) Position() geom.Point { return c.pos }

func ExampleTree_RangeQuery() {
	cities := []*city{
		{"a", geom.NewPoint(0, 0)},
		{"b", geom.NewPoint(1, 1)},
		{"c", geom.NewPoint(9, 9)},
		{"d", geom.NewPoint(10, 10)},
	}

	tree, err := quadtree.New(cities, 2, quadtree.WithBoundingBox(geom.MustRectangle(0, 0, 10, 10)))
	if err != nil {
		log.Fatal(err)
	}

	for _, c := range tree.RangeQuery(nil, geom.MustRectangle(0, 0, 2, 2)) {
		fmt.Println(c.name)
	}
	// Output:
	// a
	// b
}
