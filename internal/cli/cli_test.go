package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/doorcut/internal/model"
	"github.com/piwi3910/doorcut/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the command tree against a config file in a fresh temp
// directory and returns stdout, stderr and the config path.
func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	if configPath == "" {
		configPath = filepath.Join(t.TempDir(), "config.json")
	}
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", configPath}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDims_DefaultDoor(t *testing.T) {
	out, _, err := runCLI(t, "", "dims")
	require.NoError(t, err)

	assert.Contains(t, out, "single door")
	assert.Contains(t, out, "on sheet 1250x2100")
	assert.Contains(t, out, "on sheet 1000x2100")
	assert.Contains(t, out, "front_passive")
	assert.Contains(t, out, "n/a")
	assert.NotContains(t, out, "Passive leaf")
}

func TestDims_DoubleDoorFromFrame(t *testing.T) {
	out, _, err := runCLI(t, "", "dims", "-t", "double", "--frame-x", "1970", "--active-x", "1000")
	require.NoError(t, err)

	assert.Contains(t, out, "double door")
	assert.Contains(t, out, "Passive leaf")
	assert.NotContains(t, out, "n/a")
}

func TestDims_ReportsUnfittableFace(t *testing.T) {
	out, _, err := runCLI(t, "", "dims", "--so-y", "3100")
	require.NoError(t, err)

	assert.Contains(t, out, "no fitting stock sheet")
}

func TestDims_RejectsConflictingFlags(t *testing.T) {
	_, _, err := runCLI(t, "", "dims", "--so-x", "1000", "--frame-x", "970")
	assert.Error(t, err)
}

func TestDims_PassiveOnSingleDoor(t *testing.T) {
	_, _, err := runCLI(t, "", "dims", "--passive-x", "500")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "double doors")
}

func TestSheets_FilterByThickness(t *testing.T) {
	out, _, err := runCLI(t, "", "sheets", "--thickness", "1.5")
	require.NoError(t, err)

	assert.Contains(t, out, "built-in")
	assert.Contains(t, out, "1250x2200")
	assert.NotContains(t, out, "1500x3000")

	_, _, err = runCLI(t, "", "sheets", "--thickness", "4")
	assert.Error(t, err)
}

func TestGenerate_SingleDoor(t *testing.T) {
	outDir := t.TempDir()
	out, _, err := runCLI(t, "", "generate", "-o", outDir, "--xlsx")
	require.NoError(t, err)

	for _, name := range []string{"front_active.dxf", "rear_active.dxf", "cutlist.xlsx"} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
	assert.NoFileExists(t, filepath.Join(outDir, "front_passive.dxf"))
	assert.NoFileExists(t, filepath.Join(outDir, "cutlist.pdf"))
	assert.Contains(t, out, "Generated 1 door(s)")
}

func TestGenerate_WarnsOnSkippedFace(t *testing.T) {
	outDir := t.TempDir()
	_, stderr, err := runCLI(t, "", "generate", "-o", outDir, "--so-y", "3100")
	require.NoError(t, err)

	assert.Contains(t, stderr, "Face skipped")
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_Schedule(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	schedPath := filepath.Join(dir, "doors.yaml")
	outDir := filepath.Join(dir, "out")

	sched := model.NewSchedule("block a")
	sched.Add(model.NewDoorSpec("D01", model.DoorSingle, 1000, 2100))
	sched.Add(model.NewDoorSpec("D02", model.DoorDouble, 2000, 2100))
	require.NoError(t, project.SaveSchedule(schedPath, sched))

	_, _, err := runCLI(t, configPath, "generate", "--schedule", schedPath, "-o", outDir, "--pdf", "--labels")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "D01", "front_active.dxf"))
	assert.NoFileExists(t, filepath.Join(outDir, "D01", "rear_passive.dxf"))
	for _, face := range model.Faces {
		assert.FileExists(t, filepath.Join(outDir, "D02", face.String()+".dxf"))
	}
	assert.FileExists(t, filepath.Join(outDir, "cutlist.pdf"))
	assert.FileExists(t, filepath.Join(outDir, "labels.pdf"))

	cfg, err := project.LoadAppConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, []string{schedPath}, cfg.RecentSchedules)
}

func TestGenerate_ScheduleExcludesDoorFlags(t *testing.T) {
	_, _, err := runCLI(t, "", "generate", "--schedule", "x.yaml", "--so-x", "900")
	assert.Error(t, err)
}

func TestImport_CSVToSchedule(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "doors.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Mark,Type,SO X,SO Y,Qty\nD01,single,1000,2100,2\nD02,double,2000,2100,1\n"), 0644))
	out := filepath.Join(dir, "doors.toml")

	_, _, err := runCLI(t, "", "import", csvPath, "-o", out)
	require.NoError(t, err)

	sched, err := project.LoadSchedule(out)
	require.NoError(t, err)
	assert.Equal(t, "doors", sched.Name)
	assert.Equal(t, []string{"D01", "D02"}, sched.Marks())
	assert.Equal(t, 2, sched.Doors[0].Quantity)
	assert.Equal(t, model.DoorDouble, sched.Doors[1].Type)
}

func TestImport_RequiresKnownFormats(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runCLI(t, "", "import", filepath.Join(dir, "doors.pdf"), "-o", filepath.Join(dir, "x.json"))
	assert.Error(t, err)

	_, _, err = runCLI(t, "", "import", filepath.Join(dir, "doors.csv"), "-o", filepath.Join(dir, "x.txt"))
	assert.Error(t, err)
}

func TestInspect_GeneratedFace(t *testing.T) {
	outDir := t.TempDir()
	_, _, err := runCLI(t, "", "generate", "-o", outDir)
	require.NoError(t, err)

	out, _, err := runCLI(t, "", "inspect", filepath.Join(outDir, "front_active.dxf"))
	require.NoError(t, err)

	assert.Contains(t, out, "1250x2100")
	assert.Contains(t, out, "Features")
	assert.NotContains(t, out, "inset differs")
}

func TestBackup_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	backupPath := filepath.Join(dir, "backup.json")

	_, _, err := runCLI(t, configPath, "backup", "export", backupPath)
	require.NoError(t, err)
	require.FileExists(t, backupPath)

	restoreDir := t.TempDir()
	restoreConfig := filepath.Join(restoreDir, "config.json")
	_, _, err = runCLI(t, restoreConfig, "backup", "import", backupPath)
	require.NoError(t, err)

	cfg, err := project.LoadAppConfig(restoreConfig)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(restoreDir, "catalog.json"), cfg.CatalogFile)

	out, _, err := runCLI(t, restoreConfig, "sheets")
	require.NoError(t, err)
	assert.Contains(t, out, cfg.CatalogFile)
	assert.Contains(t, out, "1000x2100")
}

func TestDims_RejectsNegativeActiveLeaf(t *testing.T) {
	out, _, err := runCLI(t, "", "dims", "--active-x=-200")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-positive opening")
	assert.Empty(t, out)
}

func TestBackup_ImportMergesCatalog(t *testing.T) {
	dir := t.TempDir()
	backupPath := filepath.Join(dir, "backup.json")
	_, _, err := runCLI(t, "", "backup", "export", backupPath)
	require.NoError(t, err)

	// Current setup stocks a custom 1.2 mm size and a 4 mm thickness.
	configPath := filepath.Join(dir, "site", "config.json")
	customPath := filepath.Join(dir, "site", "custom.json")
	require.NoError(t, project.SaveCatalog(customPath, model.NewSheetCatalog(
		model.SheetStock{Thickness: 1.2, Sizes: []model.Dim{{Width: 1111, Height: 2222}}},
		model.SheetStock{Thickness: 4, Sizes: []model.Dim{{Width: 1500, Height: 3000}}},
	)))
	cfg := model.DefaultAppConfig()
	cfg.CatalogFile = customPath
	require.NoError(t, project.SaveAppConfig(configPath, cfg))

	_, _, err = runCLI(t, configPath, "backup", "import", "--merge", backupPath)
	require.NoError(t, err)

	restored, err := project.LoadAppConfig(configPath)
	require.NoError(t, err)
	cat, err := project.LoadCatalog(restored.CatalogFile)
	require.NoError(t, err)

	assert.Equal(t, []float64{1.2, 4, 1.5, 2, 3, 5, 8}, cat.Thicknesses())
	sizes, _ := cat.Sizes(1.2)
	assert.Equal(t, []model.Dim{{Width: 1111, Height: 2222}}, sizes, "stocked sizes are kept")
}

func TestGenerate_ScheduleRejectsDuplicateMarks(t *testing.T) {
	dir := t.TempDir()
	schedPath := filepath.Join(dir, "doors.yaml")
	outDir := filepath.Join(dir, "out")
	content := "doors:\n" +
		"  - {mark: D01, type: single, so_x: 1000, so_y: 2100}\n" +
		"  - {mark: D01, type: double, so_x: 2000, so_y: 2100}\n"
	require.NoError(t, os.WriteFile(schedPath, []byte(content), 0644))

	_, _, err := runCLI(t, "", "generate", "--schedule", schedPath, "-o", outDir)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrDuplicateMark)
	assert.NoDirExists(t, outDir)
}

func TestGenerate_ScheduleRejectsMarkOutsideOutput(t *testing.T) {
	dir := t.TempDir()
	schedPath := filepath.Join(dir, "doors.yaml")
	outDir := filepath.Join(dir, "out")
	content := "doors:\n  - {mark: ../escaped, type: single, so_x: 1000, so_y: 2100}\n"
	require.NoError(t, os.WriteFile(schedPath, []byte(content), 0644))

	_, _, err := runCLI(t, "", "generate", "--schedule", schedPath, "-o", outDir)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidMark)
	assert.NoDirExists(t, filepath.Join(dir, "escaped"))
	assert.NoDirExists(t, outDir)
}

func TestGenerate_ScheduleSingleMark(t *testing.T) {
	dir := t.TempDir()
	schedPath := filepath.Join(dir, "doors.json")
	outDir := filepath.Join(dir, "out")
	sched := model.NewSchedule("block a")
	sched.Add(model.NewDoorSpec("D01", model.DoorSingle, 1000, 2100))
	sched.Add(model.NewDoorSpec("D02", model.DoorDouble, 2000, 2100))
	require.NoError(t, project.SaveSchedule(schedPath, sched))

	_, _, err := runCLI(t, "", "generate", "--schedule", schedPath, "--mark", "D02", "-o", outDir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "D02", "front_passive.dxf"))
	assert.NoDirExists(t, filepath.Join(outDir, "D01"))

	_, _, err = runCLI(t, "", "generate", "--schedule", schedPath, "--mark", "D09", "-o", outDir)
	assert.Error(t, err)
}

func TestImport_RejectsDuplicateMarks(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "doors.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Mark,Type,SO X,SO Y\nD01,single,1000,2100\nD01,double,2000,2100\n"), 0644))
	out := filepath.Join(dir, "doors.json")

	_, _, err := runCLI(t, "", "import", csvPath, "-o", out)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrDuplicateMark)
	assert.NoFileExists(t, out)
}
