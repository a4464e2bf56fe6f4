package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/doorcut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchedule() model.Schedule {
	s := model.NewSchedule("Block A")
	s.Add(model.NewDoorSpec("A01", model.DoorSingle, 1000, 2100))
	d := model.NewDoorSpec("A02", model.DoorDouble, 2000, 2400)
	d.ActiveLeafX = 1100
	d.LeafThickness = 1.5
	d.Quantity = 4
	s.Add(d)
	return s
}

func TestSaveLoadSchedule_AllFormats(t *testing.T) {
	for _, ext := range []string{".json", ".yaml", ".yml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "doors"+ext)
			want := testSchedule()

			require.NoError(t, SaveSchedule(path, want))
			got, err := LoadSchedule(path)

			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSaveSchedule_DoorTypeWrittenAsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doors.yaml")
	require.NoError(t, SaveSchedule(path, testSchedule()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "type: double")
}

func TestLoadSchedule_HandWrittenTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.toml")
	content := `
[[doors]]
so_x = 1000.0
so_y = 2100.0

[[doors]]
mark = "B2"
type = "double"
so_x = 1900.0
so_y = 2100.0
quantity = 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := LoadSchedule(path)

	require.NoError(t, err)
	assert.Equal(t, "site", s.Name, "name defaults to the file name")
	require.Len(t, s.Doors, 2)
	assert.Equal(t, "D01", s.Doors[0].Mark)
	assert.NotEmpty(t, s.Doors[0].ID)
	assert.Equal(t, 1, s.Doors[0].Quantity)
	assert.Equal(t, model.DoorDouble, s.Doors[1].Type)
	assert.Equal(t, 2, s.Doors[1].Quantity)
}

func TestLoadSchedule_InvalidDoor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	content := `{"name":"x","doors":[{"mark":"A","so_x":0,"so_y":2100},{"mark":"B","so_x":1000,"so_y":-1}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadSchedule(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `door "A"`)
	assert.Contains(t, err.Error(), `door "B"`)
}

func TestLoadSchedule_RejectsUnsafeAndDuplicateMarks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marks.yaml")
	content := "doors:\n" +
		"  - {mark: D01, type: single, so_x: 1000, so_y: 2100}\n" +
		"  - {mark: D01, type: double, so_x: 2000, so_y: 2100}\n" +
		"  - {mark: ../escaped, type: single, so_x: 1000, so_y: 2100}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadSchedule(path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrDuplicateMark))
	assert.True(t, errors.Is(err, model.ErrInvalidMark))
}

func TestLoadSchedule_UnknownDoorType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("doors:\n  - type: sliding\n    so_x: 1000\n    so_y: 2100\n"), 0644))

	_, err := LoadSchedule(path)
	assert.Error(t, err)
}

func TestSchedule_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doors.csv")

	err := SaveSchedule(path, testSchedule())
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = LoadSchedule(path)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestLoadSchedule_MissingFile(t *testing.T) {
	_, err := LoadSchedule(filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}
