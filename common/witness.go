package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// ErrWitnessFailed appears when the method must be called
// using certain account but was not.
const ErrWitnessFailed = "witness check failed"

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller interop.Hash160) {
	if !runtime.CheckWitness(caller) {
		panic(ErrWitnessFailed)
	}
}

// HasAuthority returns true if caller is the claimed account and the
// transaction carries its witness.
func HasAuthority(claimed, caller interop.Hash160) bool {
	return claimed.Equals(caller) && runtime.CheckWitness(caller)
}
