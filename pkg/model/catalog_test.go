package model

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogTestDirectory = "../../testdata/catalogs/"

func TestLoadCatalog(t *testing.T) {
	//** Arrange
	jsonFile := filepath.Join(catalogTestDirectory, "computer-science.json")
	yamlFile := filepath.Join(catalogTestDirectory, "computer-science.yaml")

	//** Act
	fromJson, err := LoadCatalog(jsonFile)
	require.NoError(t, err)
	fromYaml, err := LoadCatalog(yamlFile)
	require.NoError(t, err)

	//** Assert
	assert.Equal(t, fromJson.Courses(), fromYaml.Courses())
	assert.Equal(t, fromJson.Majors(), fromYaml.Majors())

	course, ok := fromYaml.Lookup("CSCE235")
	require.True(t, ok)
	assert.Equal(t, 3, course.Credits)
	assert.Equal(t, []PrereqGroup{
		{Courses: []string{"CSCE155A", "CSCE155E"}},
		{Courses: []string{"MATH106"}},
	}, course.Prereqs)

	course, ok = fromYaml.Lookup("CSCE310")
	require.True(t, ok)
	assert.Equal(t, []PrereqGroup{
		{Courses: []string{"CSCE156"}},
		{Courses: []string{"CSCE235"}},
	}, course.Prereqs)

	major, ok := fromYaml.Major("Computer Science")
	require.True(t, ok)
	assert.Len(t, major.Tracks, 2)
	assert.Equal(t, "Systems", major.Tracks[0].Name)
	assert.Equal(t, Requirement{Name: "Systems core", Courses: []string{"CSCE351", "CSCE451"}, Count: 1}, major.Tracks[0].Requirements[0])
	assert.Equal(t, 3, major.Requirements[0].Count)
}

func TestLoadCatalogErrors(t *testing.T) {
	directory := t.TempDir()

	_, err := LoadCatalog(filepath.Join(directory, "missing.json"))
	assert.Error(t, err)

	malformed := filepath.Join(directory, "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{\"courses\": ["), 0644))
	_, err = LoadCatalog(malformed)
	assert.Error(t, err)

	badGroup := filepath.Join(directory, "bad-group.yaml")
	require.NoError(t, os.WriteFile(badGroup, []byte("courses:\n  - code: A\n    credits: 3\n    prereqs:\n      - 7\n"), 0644))
	_, err = LoadCatalog(badGroup)
	assert.ErrorContains(t, err, "course \"A\"")

	duplicate := filepath.Join(directory, "duplicate.yaml")
	require.NoError(t, os.WriteFile(duplicate, []byte("courses:\n  - code: A\n  - code: A\n"), 0644))
	_, err = LoadCatalog(duplicate)
	assert.ErrorContains(t, err, "duplicate course code")
}

func TestCatalogRepositories(t *testing.T) {
	catalog, err := NewCatalog(
		[]Course{{Code: "A", Credits: 3}},
		[]Major{{Name: "Mathematics"}},
	)
	require.NoError(t, err)

	var courses CourseRepository = catalog
	var majors MajorRepository = catalog

	course, err := courses.FindByCourseCode(context.Background(), "A")
	assert.NoError(t, err)
	assert.Equal(t, "A", course.Code)

	_, err = courses.FindByCourseCode(context.Background(), "B")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = majors.FindByName(context.Background(), "Physics")
	assert.True(t, errors.Is(err, ErrNotFound))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = majors.FindByName(ctx, "Mathematics")
	assert.True(t, errors.Is(err, context.Canceled))
}
