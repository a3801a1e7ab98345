package env

import (
	"os"
	"path/filepath"
)

func WorkDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, "kiln"), nil
}

// SourcesDir returns the directory package sources are checked out
// under, creating it if needed.
func SourcesDir() (string, error) {
	return workSubdir("sources")
}

// BuildsDir returns the directory build trees and install outputs live
// under, creating it if needed.
func BuildsDir() (string, error) {
	return workSubdir("builds")
}

func workSubdir(name string) (string, error) {
	workDir, err := WorkDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(workDir, name)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}
