package page

import (
	"context"
	"errors"
	"log"
	"sync"

	"booktracker/internal/action"
	"booktracker/internal/catalog"
	"booktracker/internal/entity"
	"booktracker/internal/profile"
)

// Profile shows the signed-in user's lists. It redirects to the sign-in page
// when the session has no live token.
type Profile struct {
	deps Deps
	seq  catalog.Sequencer

	mu      sync.Mutex
	state   profile.State
	items   profile.Items
	loading bool
}

func NewProfile(d Deps) *Profile {
	return &Profile{deps: d, state: profile.NewState()}
}

type profileData struct {
	User         entity.User
	Avatar       string
	Lists        []profile.List
	Current      string
	CurrentName  string
	View         profile.View
	EditingName  bool
	EditingLists bool
	Items        profile.Items
	Loading      bool
}

func (p *Profile) Render(ctx context.Context) (Output, error) {
	if !p.deps.loggedIn() {
		return Output{Redirect: "/auth"}, nil
	}
	if err := p.load(ctx); err != nil {
		return Output{}, err
	}
	return page("Profile", "profile", p.snapshot())
}

func (p *Profile) load(ctx context.Context) error {
	fetchCtx, ticket := p.seq.Begin(ctx, p.deps.timeout())
	defer ticket.Done()

	p.mu.Lock()
	p.loading = true
	list, view := p.state.Current, p.state.View
	p.mu.Unlock()

	items, err := p.deps.Profile.Load(fetchCtx, list, view)
	if !ticket.Current() {
		log.Printf("page=profile stale=true generation=%d", ticket.Generation())
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		return err
	}
	p.items = items
	return nil
}

func (p *Profile) Handle(ctx context.Context, req action.Request) (action.Result, error) {
	if !p.deps.loggedIn() {
		return signInFirst(), nil
	}

	switch req.Name {
	case "save_name":
		if _, err := p.deps.Profile.Rename(ctx, req.Value("displayName")); err != nil {
			if errors.Is(err, profile.ErrEmptyName) {
				return action.Fail("Please enter a name"), nil
			}
			log.Printf("page=profile rename err=%v", err)
			return action.Fail("Failed to update name"), nil
		}
		p.mu.Lock()
		p.state.EditingName = false
		p.mu.Unlock()
		return action.Success("Display name updated successfully!"), nil

	case "delete_list":
		if !req.Confirmed() {
			return action.AskConfirm(action.Confirm{
				Message: "Are you sure you want to delete this collection?",
				Action:  "delete_list",
				Target:  req.Target,
			}), nil
		}
		p.mu.Lock()
		err := p.state.DeleteList(req.Target)
		p.mu.Unlock()
		if err != nil {
			return action.Fail("Failed to delete collection"), nil
		}
		return action.Success("Collection deleted successfully!"), nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	switch req.Name {
	case "toggle_name_edit":
		p.state.ToggleNameEdit()
	case "toggle_list_edit":
		p.state.ToggleListEdit()
	case "create_list":
		if _, err := p.state.CreateList(req.Value("name")); err != nil {
			return action.Fail("Please enter a collection name"), nil
		}
		return action.Success("Collection created successfully!"), nil
	case "select_list":
		if err := p.state.SelectList(req.Target); err != nil {
			return action.Fail("Unknown collection"), nil
		}
	case "switch_view":
		if !p.state.SwitchView(profile.View(req.Target)) {
			return action.Fail("Unknown view"), nil
		}
	default:
		return action.Result{}, ErrUnknownAction
	}
	return action.Result{}, nil
}

// State returns a copy of the list and edit state.
func (p *Profile) State() profile.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.state
	s.Custom = append([]profile.List(nil), s.Custom...)
	return s
}

func (p *Profile) snapshot() profileData {
	user := p.deps.Session.Load().User()
	p.mu.Lock()
	defer p.mu.Unlock()
	return profileData{
		User:         user,
		Avatar:       user.AvatarSized(128),
		Lists:        p.state.Lists(),
		Current:      p.state.Current,
		CurrentName:  p.state.CurrentListName(),
		View:         p.state.View,
		EditingName:  p.state.EditingName,
		EditingLists: p.state.EditingLists,
		Items:        p.items,
		Loading:      p.loading,
	}
}
