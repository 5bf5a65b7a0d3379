package main

import (
	"path/filepath"
)

// datapackDir is the fixture data pack shared with the pipeline tests.
var datapackDir = filepath.Join("..", "..", "testdata", "datapack")

func fixtureRecipes() string { return filepath.Join(datapackDir, "recipe") }
func fixtureTags() string    { return filepath.Join(datapackDir, "tags", "item") }
func fixtureTargets() string { return filepath.Join(datapackDir, "targets.txt") }
