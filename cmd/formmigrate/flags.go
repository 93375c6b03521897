package main

import (
	"flag"
	"strings"
	"time"

	"formmigrate/internal/platform/config"
	"formmigrate/internal/platform/store"

	migratemod "formmigrate/internal/services/migrate/module"
)

// patternList collects a repeatable -additional-key-pattern flag
type patternList []string

func (p *patternList) String() string { return strings.Join(*p, ";") }

func (p *patternList) Set(v string) error {
	if v = strings.TrimSpace(v); v != "" {
		*p = append(*p, v)
	}
	return nil
}

// cliFlags are the command line overrides, applied on top of env
type cliFlags struct {
	deleteAfter   bool
	deleteInvalid bool
	patterns      patternList
	patternsFile  string
	workers       int
	envFile       string
	version       bool

	// set records which flags were given explicitly
	set map[string]bool
}

func parseFlags(fs *flag.FlagSet, args []string) (*cliFlags, error) {
	f := &cliFlags{set: map[string]bool{}}
	fs.BoolVar(&f.deleteAfter, "delete-after-migration", false, "delete keys from ceph after migration")
	fs.BoolVar(&f.deleteInvalid, "delete-invalid-data", false, "with -delete-after-migration, also delete keys that match no pattern")
	fs.Var(&f.patterns, "additional-key-pattern", "extra key regex, repeatable")
	fs.StringVar(&f.patternsFile, "key-patterns-file", "", "YAML file with additional_key_patterns")
	fs.IntVar(&f.workers, "workers", 1, "keys migrated concurrently")
	fs.StringVar(&f.envFile, "env-file", ".env", "dotenv file loaded before reading config")
	fs.BoolVar(&f.version, "version", false, "print build info and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// apply overrides env options with the flags given on the command line
func (f *cliFlags) apply(o migratemod.Options) migratemod.Options {
	if f.set["delete-after-migration"] {
		o.DeleteAfterMigration = f.deleteAfter
	}
	if f.set["delete-invalid-data"] {
		o.DeleteInvalidData = f.deleteInvalid
	}
	if len(f.patterns) > 0 {
		o.AdditionalPatterns = append(o.AdditionalPatterns, f.patterns...)
	}
	if f.set["key-patterns-file"] {
		o.PatternsFile = f.patternsFile
	}
	if f.set["workers"] {
		o.Workers = f.workers
	}
	return o
}

// storeConfig reads both backends from STORAGE_CEPH_* and STORAGE_REDIS_*
func storeConfig(root config.Conf) store.Config {
	cc := root.Prefix("STORAGE_CEPH_")
	rc := root.Prefix("STORAGE_REDIS_")
	return store.Config{
		AppName: "formmigrate",
		Ceph: store.CephConfig{
			Enabled:        true,
			Endpoint:       cc.MayString("HTTP_ENDPOINT", ""),
			AccessKey:      cc.MayString("ACCESS_KEY", ""),
			SecretKey:      cc.MayString("SECRET_KEY", ""),
			Bucket:         cc.MayString("BUCKET", ""),
			Region:         cc.MayString("REGION", ""),
			PathStyle:      cc.MayBool("PATH_STYLE", true),
			ConnectRetries: cc.MayInt("CONNECT_RETRIES", 6),
			PingTimeout:    cc.MayDuration("PING_TIMEOUT", 5*time.Second),
		},
		Redis: store.RedisConfig{
			Enabled:          true,
			Addr:             rc.MayString("ADDR", ""),
			Username:         rc.MayString("USERNAME", ""),
			Password:         rc.MayString("PASSWORD", ""),
			DB:               rc.MayInt("DB", 0),
			SentinelMaster:   rc.MayString("SENTINEL_MASTER", ""),
			SentinelNodes:    rc.MayCSV("SENTINEL_NODES", nil),
			SentinelPassword: rc.MayString("SENTINEL_PASSWORD", ""),
			TTL:              rc.MayDuration("TTL", 0),
			LogCommands:      rc.MayBool("LOG_COMMANDS", false),
			SlowCommand:      rc.MayDuration("SLOW_COMMAND", 200*time.Millisecond),
			ConnectRetries:   rc.MayInt("CONNECT_RETRIES", 6),
			PingTimeout:      rc.MayDuration("PING_TIMEOUT", 5*time.Second),
		},
	}
}
