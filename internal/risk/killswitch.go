package risk

import (
	"os"
	"strconv"
	"sync/atomic"
)

// KillSwitch is an externally toggled halt consulted at the top of every
// AllowTrade call. Implementations must re-check their backing source per
// call so a toggle takes effect on the next decision without a restart.
type KillSwitch interface {
	Engaged() bool
}

// EnvKillSwitch reads a boolean environment variable on every check.
type EnvKillSwitch struct {
	Key string
}

func (k EnvKillSwitch) Engaged() bool {
	v, err := strconv.ParseBool(os.Getenv(k.Key))
	return err == nil && v
}

// FileKillSwitch treats the existence of a sentinel file as the halt flag,
// so operators can halt trading with a plain `touch`.
type FileKillSwitch struct {
	Path string
}

func (k FileKillSwitch) Engaged() bool {
	if k.Path == "" {
		return false
	}
	_, err := os.Stat(k.Path)
	return err == nil
}

// ManualKillSwitch is an in-process toggle for tests and operator tooling.
type ManualKillSwitch struct {
	engaged atomic.Bool
}

func (k *ManualKillSwitch) Set(on bool) { k.engaged.Store(on) }

func (k *ManualKillSwitch) Engaged() bool { return k.engaged.Load() }

// MultiKillSwitch engages when any of its members does.
type MultiKillSwitch []KillSwitch

func (m MultiKillSwitch) Engaged() bool {
	for _, k := range m {
		if k != nil && k.Engaged() {
			return true
		}
	}
	return false
}
