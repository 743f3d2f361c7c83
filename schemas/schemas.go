// Package schemas embeds the JSON Schema documents used for structural
// validation of experiment files.
package schemas

import _ "embed"

// ExperimentV1Schema is the v1 experiment document schema.
//
//go:embed experiment_v1.json
var ExperimentV1Schema []byte
