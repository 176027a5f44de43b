package cli

import (
	"github.com/crisnc100/flexbreak/internal/app/progress"
	"github.com/crisnc100/flexbreak/internal/daemon"
)

// openService opens the daemon and returns its progress service plus a
// cleanup func. Every read-only subcommand goes through this.
func openService() (*progress.Service, func(), error) {
	d, err := daemon.New()
	if err != nil {
		return nil, nil, err
	}
	return d.Service, d.Close, nil
}
