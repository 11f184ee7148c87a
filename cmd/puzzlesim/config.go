package main

import (
	"encoding/json"
	"os"
)

// Config holds the competition defaults the challenge protocol needs before
// it can start a round: the bond a commit must lock and the two durations
// gating the commit-reveal and test windows. A flat struct with durations
// as whole seconds, not nested sub-objects.
type Config struct {
	RequiredBond string `json:"requiredBond"`
	CompDurSec   int64  `json:"compDurSec"`
	TestDurSec   int64  `json:"testDurSec"`
}

func parseJSONConfig(config *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(config)
}
