package launcher

import (
	"encoding/json"

	"github.com/gurisko/jbp/internal/vcs"
)

// ItemView is the serializable form of an Item.
type ItemView struct {
	ID              string       `json:"id"`
	Text            string       `json:"text"`
	Subtext         string       `json:"subtext"`
	InputActionText string       `json:"input_action_text"`
	Icon            IconRef      `json:"icon"`
	IDE             string       `json:"ide"`
	Executable      string       `json:"executable"`
	LastOpened      int64        `json:"last_opened"`
	Branch          string       `json:"branch,omitempty"`
	Actions         []ActionView `json:"actions"`
}

// IconRef defers icon resolution until the view is encoded for a host.
type IconRef struct {
	resolve func() string
}

// StaticIcon returns an IconRef for an already known path.
func StaticIcon(path string) IconRef {
	return IconRef{resolve: func() string { return path }}
}

// Path resolves the icon.
func (r IconRef) Path() string {
	if r.resolve == nil {
		return ""
	}
	return r.resolve()
}

func (r IconRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Path())
}

func (r *IconRef) UnmarshalJSON(data []byte) error {
	var path string
	if err := json.Unmarshal(data, &path); err != nil {
		return err
	}
	*r = StaticIcon(path)
	return nil
}

type ActionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// View renders it for output. withBranch adds the git branch of the project.
func (it Item) View(withBranch bool) ItemView {
	v := ItemView{
		ID:              it.ID,
		Text:            it.Text,
		Subtext:         it.Subtext,
		InputActionText: it.InputActionText,
		Icon:            IconRef{resolve: it.icon},
		LastOpened:      it.Project.LastOpened,
	}
	if it.Project.IDE != nil {
		v.IDE = it.Project.IDE.Name()
		v.Executable = it.Project.IDE.Executable()
	}
	if withBranch {
		v.Branch, _ = vcs.Branch(it.Project.Path)
	}
	for _, a := range it.Actions {
		v.Actions = append(v.Actions, ActionView{ID: a.ID, Text: a.Text})
	}
	return v
}

// Views renders every item.
func Views(items []Item, withBranch bool) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, it := range items {
		views = append(views, it.View(withBranch))
	}
	return views
}

// IDEView describes an active IDE variant.
type IDEView struct {
	Name       string `json:"name"`
	Executable string `json:"executable"`
	Icon       string `json:"icon"`
	ConfigDir  string `json:"config_dir,omitempty"`
}

// IDEs lists the active variants with the config directory each one reads.
func (p *Plugin) IDEs() []IDEView {
	views := make([]IDEView, 0, len(p.variants))
	for _, v := range p.variants {
		view := IDEView{Name: v.Name(), Executable: v.Executable(), Icon: v.Icon()}
		if dir, ok := p.scanner.ConfigDir(v); ok {
			view.ConfigDir = dir
		}
		views = append(views, view)
	}
	return views
}
