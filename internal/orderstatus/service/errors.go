package service

import "fmt"

const (
	StageResolve = "resolve"
	StageEnrich  = "enrich"
)

// LookupError names the key and the stage at which a legacy lookup failed.
type LookupError struct {
	Key   string
	Stage string
	Err   error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Stage, e.Key, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
