package launcher

import (
	"fmt"

	"github.com/gurisko/jbp/internal/ide"
)

// Action is something the user can do with an item.
type Action struct {
	ID   string
	Text string
	Run  func() error
}

// Item is one launcher result.
type Item struct {
	ID              string
	Text            string
	Subtext         string
	InputActionText string
	Actions         []Action

	// Project is the project behind the item.
	Project ide.Project

	icon func() string
}

// Icon resolves the item icon path. Resolution is deferred until a host
// actually renders the icon.
func (it Item) Icon() string {
	if it.icon == nil {
		return ""
	}
	return it.icon()
}

// Open runs the item's single open action.
func (it Item) Open() error {
	if len(it.Actions) == 0 {
		return fmt.Errorf("item %s has no action", it.ID)
	}
	return it.Actions[0].Run()
}

// NewItem renders p. The open action launches p.IDE's executable on the
// project path through spawner.
func NewItem(p ide.Project, spawner Spawner) Item {
	v := p.IDE
	exe := v.Executable()
	path := p.Path

	return Item{
		ID:              ItemID(p),
		Text:            p.Name,
		Subtext:         p.Path,
		InputActionText: p.Name,
		Project:         p,
		icon:            v.Icon,
		Actions: []Action{
			{
				ID:   "open",
				Text: "Open in " + v.Name(),
				Run: func() error {
					if err := spawner.Start(exe, path); err != nil {
						return fmt.Errorf("failed to start %s: %w", exe, err)
					}
					return nil
				},
			},
		},
	}
}

// ItemID is "<executable>-<path>-<last opened>".
func ItemID(p ide.Project) string {
	return fmt.Sprintf("%s-%s-%d", p.IDE.Executable(), p.Path, p.LastOpened)
}
