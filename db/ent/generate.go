package main

import (
	"log"

	"entgo.io/ent/entc"
	"entgo.io/ent/entc/gen"
)

func main() {
	err := entc.Generate(
		"./db/ent/schema",
		&gen.Config{
			Target: "gen/ent",
			// Module-qualified so the emitted client imports its own
			// subpackages (predicate, migrate, record) resolvably.
			Package: "github.com/inkform/inkform/gen/ent",
			Schema:  "github.com/inkform/inkform/db/ent/schema",
		},
	)
	if err != nil {
		log.Fatal(err)
	}
}
