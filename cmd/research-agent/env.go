// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads dir/.env and then dir/.env.<APP_ENV>, the latter
// overriding the former. Variables already set in the process environment
// win over .env but not over the APP_ENV file. Missing files are skipped.
// It returns the files that were loaded.
func loadEnvFiles(dir string) []string {
	var loaded []string

	base := filepath.Join(dir, ".env")
	if err := godotenv.Load(base); err == nil {
		loaded = append(loaded, base)
	}

	if appEnv := os.Getenv("APP_ENV"); appEnv != "" {
		envFile := filepath.Join(dir, ".env."+appEnv)
		if err := godotenv.Overload(envFile); err == nil {
			loaded = append(loaded, envFile)
		}
	}
	return loaded
}
