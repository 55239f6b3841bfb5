package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tengjizhang/trs/internal/store"
)

func requireApp(getApp func() *App) (*App, error) {
	app := getApp()
	if app == nil {
		return nil, errors.New("app not initialized")
	}
	return app, nil
}

func requirePositive(name string, v int64) error {
	if v <= 0 {
		return fmt.Errorf("%w: --%s must be a positive id", store.ErrInvalidInput, name)
	}
	return nil
}

func mustMarkRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}
