package kernel

import (
	"fmt"
	"time"
)

// Config is the boot configuration.
//
// UseNTP requires Wifi. Run hands the loop to Boot; with Run false, Boot
// returns after setup and the caller drives Step or Run itself. Zero
// timeouts keep the kernel defaults.
type Config struct {
	Wifi         bool
	UseNTP       bool
	Run          bool
	DimTimeout   time.Duration
	SleepTimeout time.Duration
}

// Boot performs one-time setup: applies power timeouts, chirps the buzzer,
// brings up the network and syncs the clock when asked, then either runs the
// loop or returns control to the caller.
func (k *Kernel) Boot(cfg Config) error {
	if cfg.UseNTP && !cfg.Wifi {
		return fmt.Errorf("%w: ntp requires wifi", ErrInvalidConfiguration)
	}
	if cfg.DimTimeout != 0 {
		k.power.cfg.DimTimeout = cfg.DimTimeout
	}
	if cfg.SleepTimeout != 0 {
		k.power.cfg.SleepTimeout = cfg.SleepTimeout
	}

	k.h.Buzzer().Beep(880, 40)

	if cfg.Wifi {
		if err := k.h.Network().Connect(); err != nil {
			k.Post(SeverityWarning, fmt.Sprintf("wifi connect: %v", err))
		} else if cfg.UseNTP {
			if err := k.h.Network().SyncTime(); err != nil {
				k.Post(SeverityWarning, fmt.Sprintf("ntp sync: %v", err))
			}
		}
	}

	k.Post(SeverityInfo, "boot complete")
	if cfg.Run {
		k.Run()
	}
	return nil
}
