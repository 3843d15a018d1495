// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/util"
)

// basic defaults (directories and files are relative to the
// "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultDatabase        = "ledgertx.leveldb"
	defaultPlatformVersion = 4

	defaultCacheExpiry = 120          // seconds
	maximumCacheExpiry = 24 * 60 * 60 // seconds

	defaultLogDirectory = "log"
	defaultLogFile      = "ledgertx.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// Configuration - the decoded configuration file
type Configuration struct {
	DataDirectory   string               `gluamapper:"data_directory" json:"data_directory"`
	Database        string               `gluamapper:"database" json:"database"`
	PlatformVersion uint64               `gluamapper:"platform_version" json:"platform_version"`
	Testing         bool                 `gluamapper:"testing" json:"testing"`
	CacheExpiry     int                  `gluamapper:"cache_expiry" json:"cache_expiry"`
	Keys            []string             `gluamapper:"keys" json:"-"` // base58 private keys for the keystore
	Logging         logger.Configuration `gluamapper:"logging" json:"logging"`
}

// Load - read decode and verify the configuration
func Load(configurationFileName string) (*Configuration, error) {
	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory:   defaultDataDirectory,
		Database:        defaultDatabase,
		PlatformVersion: defaultPlatformVersion,
		Testing:         false,
		CacheExpiry:     defaultCacheExpiry,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	if 0 == options.PlatformVersion {
		return nil, fmt.Errorf("%w: platform_version must be positive", fault.ErrInvalidConfiguration)
	}

	if options.CacheExpiry <= 0 || options.CacheExpiry > maximumCacheExpiry {
		return nil, fmt.Errorf("%w: cache_expiry: %d outside 1..%d", fault.ErrInvalidConfiguration, options.CacheExpiry, maximumCacheExpiry)
	}

	// ensure absolute data directory
	switch options.DataDirectory {
	case "", "~":
		return nil, fmt.Errorf("%w: path: %q is not a valid directory", fault.ErrInvalidConfiguration, options.DataDirectory)
	case ".":
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = util.EnsureAbsolute(dataDirectory, options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("%w: path: %q is not a directory", fault.ErrInvalidConfiguration, options.DataDirectory)
	}

	// the log file must be a plain name
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fmt.Errorf("%w: file: %q is not plain name", fault.ErrInvalidConfiguration, options.Logging.File)
	}

	options.Database = util.EnsureAbsolute(options.DataDirectory, options.Database)

	// make absolute and create directories if they do not already exist
	options.Logging.Directory = util.EnsureAbsolute(options.DataDirectory, options.Logging.Directory)
	if err := os.MkdirAll(options.Logging.Directory, 0700); nil != err {
		return nil, err
	}

	return options, nil
}

// CacheDuration - the storage cache expiry
func (c *Configuration) CacheDuration() time.Duration {
	return time.Duration(c.CacheExpiry) * time.Second
}
