package file_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benmeehan/camera-alarm-agent/pkg/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileService_IsFileExists(t *testing.T) {
	dir := t.TempDir()
	fs := file.NewFileService()

	exists, err := fs.IsFileExists(filepath.Join(dir, "missing"))
	assert.NoError(t, err)
	assert.False(t, exists)

	path := filepath.Join(dir, "present")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	exists, err = fs.IsFileExists(path)
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestFileService_CopyFile_PreservesModeAndTime(t *testing.T) {
	dir := t.TempDir()
	fs := file.NewFileService()

	src := filepath.Join(dir, "motion.jpg")
	require.NoError(t, os.WriteFile(src, []byte("jpeg-bytes"), 0640))
	mtime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	dst := filepath.Join(dir, "temp.jpg")
	require.NoError(t, fs.CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(mtime))
}

func TestFileService_CopyFile_OverwritesDestination(t *testing.T) {
	dir := t.TempDir()
	fs := file.NewFileService()

	src := filepath.Join(dir, "motion.mp4")
	dst := filepath.Join(dir, "temp.mp4")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0600))
	require.NoError(t, os.WriteFile(dst, []byte("old-and-longer"), 0600))

	require.NoError(t, fs.CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestFileService_CopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	fs := file.NewFileService()

	err := fs.CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "out"))
	assert.Error(t, err)

	exists, _ := fs.IsFileExists(filepath.Join(dir, "out"))
	assert.False(t, exists)
}

func TestFileService_ReadYamlFile(t *testing.T) {
	dir := t.TempDir()
	fs := file.NewFileService()

	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: cam\nport: 1884\n"), 0600))

	var v struct {
		Name string `yaml:"name"`
		Port int    `yaml:"port"`
	}
	require.NoError(t, fs.ReadYamlFile(path, &v))
	assert.Equal(t, "cam", v.Name)
	assert.Equal(t, 1884, v.Port)
}
