package config

import "path/filepath"

const dbFileEnvVar = "DB_FILE"

type StoreConfig interface {
	GetDBFile() string
}

type Store struct{}

var _ StoreConfig = Store{}

// GetDBFile defaults to db.json inside the data folder.
func (Store) GetDBFile() string {
	return GetEnv(dbFileEnvVar, filepath.Join(EnvVars{}.GetDataFolder(), "db.json"))
}
