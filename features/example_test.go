package features_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/spweights/features"
)

func ExampleDecodeJSON() {
	ds, err := features.DecodeJSON(strings.NewReader(`{
		"id_field": "FIPS",
		"records": [
			{"id": 7, "values": {"POP": 120}, "neighbors": [9]},
			{"id": 9, "values": {"POP": 80}, "neighbors": [7]}
		]}`))
	if err != nil {
		fmt.Println(err)
		return
	}
	adj, _ := ds.OrderAdjacency()
	fmt.Println(ds.N(), ds.FieldNames(), adj[0])
	// Output: 2 [POP] [1]
}
