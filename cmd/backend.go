package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/gurisko/jbp/internal/config"
	"github.com/gurisko/jbp/internal/ide"
	"github.com/gurisko/jbp/internal/launcher"
	"github.com/gurisko/jbp/internal/paths"
)

// backend answers CLI requests either in-process or through the daemon.
type backend interface {
	Items(ctx context.Context, query string, withBranch bool) ([]launcher.ItemView, error)
	Open(ctx context.Context, query, id string) error
	Settings(ctx context.Context) (config.Settings, error)
	SetBool(ctx context.Context, key string, value bool) (config.Settings, error)
	IDEs(ctx context.Context) ([]launcher.IDEView, error)
}

func newBackend() (backend, error) {
	if viaDaemon {
		return remoteBackend()
	}
	plugin, store, err := newPlugin()
	if err != nil {
		return nil, err
	}
	return &localBackend{plugin: plugin, store: store}, nil
}

func newPlugin() (*launcher.Plugin, *config.Store, error) {
	store, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	variants := ide.ResolveKnown(paths.IconsDir())
	return launcher.New(variants, ide.NewScanner(), store, launcher.DetachedSpawner{}), store, nil
}

type localBackend struct {
	plugin *launcher.Plugin
	store  *config.Store
}

func (b *localBackend) Items(_ context.Context, query string, withBranch bool) ([]launcher.ItemView, error) {
	return launcher.Views(b.plugin.Items(query), withBranch), nil
}

func (b *localBackend) Open(_ context.Context, query, id string) error {
	it, err := b.plugin.Find(query, id)
	if err != nil {
		return fmt.Errorf("%w: %s", err, id)
	}
	return it.Open()
}

func (b *localBackend) Settings(context.Context) (config.Settings, error) {
	return b.store.Settings(), nil
}

func (b *localBackend) SetBool(_ context.Context, key string, value bool) (config.Settings, error) {
	if key == config.KeyMatchPath {
		if err := b.plugin.SetMatchPath(value); err != nil {
			return config.Settings{}, err
		}
		return b.store.Settings(), nil
	}
	if err := b.store.SetBool(key, value); err != nil {
		return config.Settings{}, err
	}
	return b.store.Settings(), nil
}

func (b *localBackend) IDEs(context.Context) ([]launcher.IDEView, error) {
	return b.plugin.IDEs(), nil
}

func queryFromArgs(args []string) string {
	return launcher.StripTrigger(strings.Join(args, " "))
}
